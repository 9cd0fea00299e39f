package memory

import (
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
)

// ErrNotFound is the shared not-found sentinel. Alias so callers can
// classify errors without importing a specific backend.
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests.
type Memory struct {
	user       *userRepository
	credential *credentialRepository
	resetToken *resetTokenRepository
	department *departmentRepository
	jobRole    *jobRoleRepository
	rate       *rateRepository
	meeting    *meetingRepository
	setting    *settingRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:       newUserRepository(),
		credential: newCredentialRepository(),
		resetToken: newResetTokenRepository(),
		department: newDepartmentRepository(),
		jobRole:    newJobRoleRepository(),
		rate:       newRateRepository(),
		meeting:    newMeetingRepository(),
		setting:    newSettingRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository             { return m.user }
func (m *Memory) Credential() interfaces.CredentialRepository { return m.credential }
func (m *Memory) ResetToken() interfaces.ResetTokenRepository { return m.resetToken }
func (m *Memory) Department() interfaces.DepartmentRepository { return m.department }
func (m *Memory) JobRole() interfaces.JobRoleRepository       { return m.jobRole }
func (m *Memory) Rate() interfaces.RateRepository             { return m.rate }
func (m *Memory) Meeting() interfaces.MeetingRepository       { return m.meeting }
func (m *Memory) Setting() interfaces.SettingRepository       { return m.setting }

func (m *Memory) Close() error { return nil }
