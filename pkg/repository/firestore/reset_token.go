package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type resetTokenDocument struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"user_id"`
	Token     string    `firestore:"token"`
	ExpiresAt int64     `firestore:"expires_at"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toResetTokenDocument(t *model.PasswordResetToken) *resetTokenDocument {
	return &resetTokenDocument{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func (d *resetTokenDocument) toModel() *model.PasswordResetToken {
	return &model.PasswordResetToken{
		ID:        types.ResetTokenID(d.ID),
		UserID:    types.UserID(d.UserID),
		Token:     d.Token,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

type resetTokenRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResetTokenRepository(client *firestore.Client) *resetTokenRepository {
	return &resetTokenRepository{client: client}
}

func (r *resetTokenRepository) collection() string {
	return collectionName(r.collectionPrefix, "password_reset_tokens")
}

func (r *resetTokenRepository) Put(ctx context.Context, token *model.PasswordResetToken) (*model.PasswordResetToken, error) {
	created := *token
	if created.ID == "" {
		created.ID = types.NewResetTokenID()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toResetTokenDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to put reset token", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *resetTokenRepository) GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	iter := r.client.Collection(r.collection()).Where("token", "==", token).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "reset token not found")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query reset token")
	}

	var d resetTokenDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal reset token")
	}
	return d.toModel(), nil
}

func (r *resetTokenRepository) Delete(ctx context.Context, id types.ResetTokenID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "reset token not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get reset token", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete reset token", goerr.V("id", id))
	}
	return nil
}
