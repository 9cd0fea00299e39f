package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type settingDocument struct {
	Key       string    `firestore:"key"`
	Value     string    `firestore:"value"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (d *settingDocument) toModel() *model.Setting {
	return &model.Setting{
		Key:       d.Key,
		Value:     d.Value,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type settingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSettingRepository(client *firestore.Client) *settingRepository {
	return &settingRepository{client: client}
}

func (r *settingRepository) collection() string {
	return collectionName(r.collectionPrefix, "settings")
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	doc, err := r.client.Collection(r.collection()).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "setting not found", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get setting", goerr.V("key", key))
	}

	var d settingDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal setting")
	}
	return d.toModel(), nil
}

// Put upserts, preserving the original creation time when the key
// already exists.
func (r *settingRepository) Put(ctx context.Context, setting *model.Setting) (*model.Setting, error) {
	docRef := r.client.Collection(r.collection()).Doc(setting.Key)
	now := time.Now().UTC()

	stored := *setting
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if doc, err := docRef.Get(ctx); err == nil {
		var existing settingDocument
		if err := doc.DataTo(&existing); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal setting")
		}
		stored.CreatedAt = existing.CreatedAt
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to get setting", goerr.V("key", setting.Key))
	}

	doc := &settingDocument{
		Key:       stored.Key,
		Value:     stored.Value,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put setting", goerr.V("key", stored.Key))
	}
	return &stored, nil
}
