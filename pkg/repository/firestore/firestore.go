package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
)

// ErrNotFound is the shared not-found sentinel. Alias so callers can
// classify errors without importing a specific backend.
var ErrNotFound = interfaces.ErrNotFound

// Firestore is the production repository backed by Cloud Firestore.
type Firestore struct {
	client     *firestore.Client
	user       *userRepository
	credential *credentialRepository
	resetToken *resetTokenRepository
	department *departmentRepository
	jobRole    *jobRoleRepository
	rate       *rateRepository
	meeting    *meetingRepository
	setting    *settingRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test
// runs sharing one Firestore project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.user.collectionPrefix = prefix
		f.credential.collectionPrefix = prefix
		f.resetToken.collectionPrefix = prefix
		f.department.collectionPrefix = prefix
		f.jobRole.collectionPrefix = prefix
		f.rate.collectionPrefix = prefix
		f.meeting.collectionPrefix = prefix
		f.setting.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:     client,
		user:       newUserRepository(client),
		credential: newCredentialRepository(client),
		resetToken: newResetTokenRepository(client),
		department: newDepartmentRepository(client),
		jobRole:    newJobRoleRepository(client),
		rate:       newRateRepository(client),
		meeting:    newMeetingRepository(client),
		setting:    newSettingRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) User() interfaces.UserRepository             { return f.user }
func (f *Firestore) Credential() interfaces.CredentialRepository { return f.credential }
func (f *Firestore) ResetToken() interfaces.ResetTokenRepository { return f.resetToken }
func (f *Firestore) Department() interfaces.DepartmentRepository { return f.department }
func (f *Firestore) JobRole() interfaces.JobRoleRepository       { return f.jobRole }
func (f *Firestore) Rate() interfaces.RateRepository             { return f.rate }
func (f *Firestore) Meeting() interfaces.MeetingRepository       { return f.meeting }
func (f *Firestore) Setting() interfaces.SettingRepository       { return f.setting }

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
