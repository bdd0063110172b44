package models

// Static reference data loaded by the bulk import endpoints. Passwords
// are plaintext here and hashed on insert; this data is for
// non-production seeding only.

type DoctorSeed struct {
	Doctor          Doctor
	Password        string
	Specializations []string
	ClinicImages    []string
}

type PatientSeed struct {
	Patient  Patient
	Password string
}

var DoctorSeeds = []DoctorSeed{
	{
		Doctor: Doctor{
			FirstName: "Muhibur", LastName: "Rahman", Email: "muhibur@example.com",
			Gender: "male", Bio: "Dedicated general physician", ExperienceYears: 8,
			ConsultationFee: 100, AverageRating: 4.8, TotalRatings: 272,
			City: "Lagos", ClinicName: "Mount Adora Clinic", ClinicAddress: "Akhalia, Sylhet",
		},
		Password:        "Password1!",
		Specializations: []string{"Surgeon", "General"},
	},
	{
		Doctor: Doctor{
			FirstName: "Saleh", LastName: "Mahmud", Email: "saleh@example.com",
			Gender: "male", Bio: "Consultant neurologist", ExperienceYears: 12,
			ConsultationFee: 150, AverageRating: 4.5, TotalRatings: 194,
			City: "Abuja", ClinicName: "Ibn Sina Hospital", ClinicAddress: "Subhanighat",
		},
		Password:        "Password1!",
		Specializations: []string{"Neurologist"},
	},
	{
		Doctor: Doctor{
			FirstName: "Farid", LastName: "Uddin", Email: "farid@example.com",
			Gender: "male", Bio: "Dermatology specialist", ExperienceYears: 6,
			ConsultationFee: 90, AverageRating: 4.2, TotalRatings: 86,
			City: "Lagos", ClinicName: "Popular Medical Center", ClinicAddress: "New Medical Rd",
		},
		Password:        "Password1!",
		Specializations: []string{"Dermatologist"},
	},
	{
		Doctor: Doctor{
			FirstName: "Amina", LastName: "Yusuf", Email: "amina@example.com",
			Gender: "female", Bio: "Pediatric care", ExperienceYears: 10,
			ConsultationFee: 120, AverageRating: 4.9, TotalRatings: 310,
			City: "Kano", ClinicName: "Sunrise Children Clinic", ClinicAddress: "12 Hospital Rd",
		},
		Password:        "Password1!",
		Specializations: []string{"Pediatrician"},
	},
	{
		Doctor: Doctor{
			FirstName: "David", LastName: "Okafor", Email: "okafor@example.com",
			Gender: "male", Bio: "Cardiologist with interventional focus", ExperienceYears: 15,
			ConsultationFee: 200, AverageRating: 4.7, TotalRatings: 420,
			City: "Lagos", ClinicName: "Heartline Centre", ClinicAddress: "3 Marina Way",
		},
		Password:        "Password1!",
		Specializations: []string{"Cardiologist", "Surgeon"},
	},
	{
		Doctor: Doctor{
			FirstName: "Grace", LastName: "Eze", Email: "grace@example.com",
			Gender: "female", Bio: "Family medicine", ExperienceYears: 4,
			ConsultationFee: 70, AverageRating: 4.0, TotalRatings: 51,
			City: "Enugu", ClinicName: "Eze Family Practice", ClinicAddress: "8 Garden Ave",
		},
		Password:        "Password1!",
		Specializations: []string{"General"},
	},
}

var PatientSeeds = []PatientSeed{
	{
		Patient: Patient{
			FirstName: "John", LastName: "Doe", Email: "john@example.com",
			BloodGroup: "O+", Phone: "08011111111", City: "Lagos", Country: "Nigeria",
		},
		Password: "Password1!",
	},
	{
		Patient: Patient{
			FirstName: "Mary", LastName: "Smith", Email: "mary@example.com",
			BloodGroup: "A-", Phone: "08022222222", City: "Abuja", Country: "Nigeria",
		},
		Password: "Password1!",
	},
	{
		Patient: Patient{
			FirstName: "Ibrahim", LastName: "Bello", Email: "ibrahim@example.com",
			BloodGroup: "B+", Phone: "08033333333", City: "Kano", Country: "Nigeria",
		},
		Password: "Password1!",
	},
}
