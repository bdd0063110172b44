package middlewares

import (
	"CareConnect/apperr"
	"CareConnect/models"
	"CareConnect/utils"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type so request-scoped identities cannot collide.
type contextKey string

const (
	patientKey contextKey = "authPatient"
	doctorKey  contextKey = "authDoctor"
)

// PatientResolver loads a patient by ID with the password field stripped.
type PatientResolver interface {
	ResolvePatient(ctx context.Context, id string) (*models.Patient, error)
}

// DoctorResolver loads a doctor by ID with the password field stripped.
type DoctorResolver interface {
	ResolveDoctor(ctx context.Context, id string) (*models.Doctor, error)
}

// PatientAuth validates a patient bearer token and attaches the patient
// record to the request context. Doctor tokens are rejected.
func PatientAuth(secret string, resolver PatientResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyBearer(c, secret, utils.VariantPatient)
		if !ok {
			return
		}
		patient, err := resolver.ResolvePatient(c.Request.Context(), claims.Subject)
		if err != nil || patient == nil {
			abortUnauthorized(c, "Not Authorized")
			return
		}
		ctx := context.WithValue(c.Request.Context(), patientKey, patient)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// DoctorAuth validates a doctor bearer token and attaches the doctor
// record to the request context. Patient tokens are rejected.
func DoctorAuth(secret string, resolver DoctorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyBearer(c, secret, utils.VariantDoctor)
		if !ok {
			return
		}
		doctor, err := resolver.ResolveDoctor(c.Request.Context(), claims.Subject)
		if err != nil || doctor == nil {
			abortUnauthorized(c, "Not Authorized")
			return
		}
		ctx := context.WithValue(c.Request.Context(), doctorKey, doctor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func verifyBearer(c *gin.Context, secret, variant string) (*utils.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Not Authorized, no token provided")
		return nil, false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		abortUnauthorized(c, "Not Authorized, invalid Authorization header")
		return nil, false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ValidateToken(token, variant, secret)
	if err != nil {
		abortUnauthorized(c, "Not Authorized")
		return nil, false
	}
	return claims, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

// PatientFromContext retrieves the authenticated patient.
func PatientFromContext(ctx context.Context) (*models.Patient, error) {
	patient, ok := ctx.Value(patientKey).(*models.Patient)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "patient identity not found in context")
	}
	return patient, nil
}

// DoctorFromContext retrieves the authenticated doctor.
func DoctorFromContext(ctx context.Context) (*models.Doctor, error) {
	doctor, ok := ctx.Value(doctorKey).(*models.Doctor)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "doctor identity not found in context")
	}
	return doctor, nil
}
