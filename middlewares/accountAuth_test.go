package middlewares

import (
	"CareConnect/models"
	"CareConnect/utils"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

const testSecret = "middleware-test-secret"

type fakePatientResolver struct {
	patients map[string]*models.Patient
}

func (f *fakePatientResolver) ResolvePatient(ctx context.Context, id string) (*models.Patient, error) {
	return f.patients[id], nil
}

type fakeDoctorResolver struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorResolver) ResolveDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	return f.doctors[id], nil
}

func patientTestRouter(resolver *fakePatientResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", PatientAuth(testSecret, resolver), func(c *gin.Context) {
		patient, err := PatientFromContext(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": patient.ID})
	})
	return router
}

func request(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPatientAuthAccepts(t *testing.T) {
	resolver := &fakePatientResolver{patients: map[string]*models.Patient{
		"p1": {ID: "p1", Email: "john@example.com"},
	}}
	router := patientTestRouter(resolver)

	token, err := utils.GenerateToken("p1", utils.VariantPatient, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w := request(t, router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestPatientAuthRejectsMissingHeader(t *testing.T) {
	router := patientTestRouter(&fakePatientResolver{patients: map[string]*models.Patient{}})
	if w := request(t, router, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestPatientAuthRejectsNonBearerScheme(t *testing.T) {
	router := patientTestRouter(&fakePatientResolver{patients: map[string]*models.Patient{}})
	if w := request(t, router, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestPatientAuthRejectsDoctorToken(t *testing.T) {
	resolver := &fakePatientResolver{patients: map[string]*models.Patient{
		"d1": {ID: "d1"},
	}}
	router := patientTestRouter(resolver)

	token, err := utils.GenerateToken("d1", utils.VariantDoctor, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := request(t, router, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("doctor token on patient gate: status = %d, want 401", w.Code)
	}
}

func TestPatientAuthRejectsUnresolvableAccount(t *testing.T) {
	router := patientTestRouter(&fakePatientResolver{patients: map[string]*models.Patient{}})

	token, err := utils.GenerateToken("deleted", utils.VariantPatient, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := request(t, router, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("token for deleted account: status = %d, want 401", w.Code)
	}
}

func TestDoctorAuthRejectsPatientToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &fakeDoctorResolver{doctors: map[string]*models.Doctor{
		"p1": {ID: "p1"},
	}}
	router := gin.New()
	router.GET("/protected", DoctorAuth(testSecret, resolver), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := utils.GenerateToken("p1", utils.VariantPatient, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := request(t, router, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("patient token on doctor gate: status = %d, want 401", w.Code)
	}
}
