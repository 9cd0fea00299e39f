package interfaces

// Repository defines the interface for data persistence. Two backends
// implement it: Firestore for production and an in-memory store for
// development and tests.
type Repository interface {
	User() UserRepository
	Credential() CredentialRepository
	ResetToken() ResetTokenRepository
	Department() DepartmentRepository
	JobRole() JobRoleRepository
	Rate() RateRepository
	Meeting() MeetingRepository
	Setting() SettingRepository

	Close() error
}
