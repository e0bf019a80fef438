package content

import (
	"context"
	"errors"

	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
)

// TypeLookup fetches a record's discriminant by id. It is the narrow slice of
// the persistence collaborator the referential checker needs.
type TypeLookup interface {
	ContentTypeByID(ctx context.Context, id string) (models.ContentType, error)
}

// CheckQuestionReference validates the one cross-record relationship:
// a discussion's relatedQuestionId must resolve to an existing record whose
// type is question. A missing or wrong-type target is a definitive
// ReferentialError; infrastructure failures from the lookup pass through
// unmodified so callers can distinguish and retry them.
//
// The check runs at write time only. A question deleted or retyped later is
// not detected; that consistency gap is intentional.
func CheckQuestionReference(ctx context.Context, lookup TypeLookup, questionID string) error {
	ct, err := lookup.ContentTypeByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferentialError{
				RelatedQuestionID: questionID,
				Reason:            "referenced content does not exist",
			}
		}
		return err
	}

	if ct != models.TypeQuestion {
		return &domain.ReferentialError{
			RelatedQuestionID: questionID,
			Reason:            "referenced content must be a question, got " + string(ct),
		}
	}

	return nil
}
