package repository

import (
	"context"
	"errors"

	tutorserrors "tutorhub/internal/tutors/errors"
	apperrors "tutorhub/pkg/errors"
	"tutorhub/pkg/model"
)

// Directory is the read-only view of tutor profiles other services use,
// with repository sentinels translated into AppErrors at the boundary.
type Directory struct {
	repo TutorRepository
}

func NewDirectory(repo TutorRepository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) FindByID(ctx context.Context, id string) (*model.Tutor, error) {
	tutor, err := d.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, tutorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Tutor", id)
		}
		return nil, err
	}
	return tutor, nil
}
