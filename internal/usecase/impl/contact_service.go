package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type contactService struct {
	contactRepo repository.ContactRepository
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for ContactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		logger:      params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *contactService) List(ctx context.Context) ([]*entity.Contact, error) {
	contacts, err := srv.contactRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

func (srv *contactService) Get(ctx context.Context, id string) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, repository.ErrContactNotFound, domainerrors.ErrContactNotFound, "failed to find contact")
	}

	return contact, nil
}

// Create requires every field.
func (srv *contactService) Create(ctx context.Context, input usecase.ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Email:         entity.NormalizeEmail(input.Email),
		FavoriteColor: strings.TrimSpace(input.FavoriteColor),
	}

	if missing := missingFields(
		"firstName", contact.FirstName,
		"lastName", contact.LastName,
		"email", contact.Email,
		"favoriteColor", contact.FavoriteColor,
	); missing != "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("Missing required fields: " + missing))
	}

	if err := srv.contactRepo.Create(ctx, contact); err != nil {
		return nil, errors.Wrap(err, "failed to create contact")
	}

	srv.log(ctx).Info("Contact created", slog.String("contact_id", contact.ID))

	return contact, nil
}

func (srv *contactService) Update(ctx context.Context, id string, input usecase.ContactInput) (*entity.Contact, error) {
	if input == (usecase.ContactInput{}) {
		return nil, errors.WithStack(domainerrors.ErrNoUpdateData)
	}

	contact, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.FirstName); v != "" {
		contact.FirstName = v
	}

	if v := strings.TrimSpace(input.LastName); v != "" {
		contact.LastName = v
	}

	if v := entity.NormalizeEmail(input.Email); v != "" {
		contact.Email = v
	}

	if v := strings.TrimSpace(input.FavoriteColor); v != "" {
		contact.FavoriteColor = v
	}

	if err := srv.contactRepo.Update(ctx, contact); err != nil {
		return nil, lookupError(err, repository.ErrContactNotFound, domainerrors.ErrContactNotFound, "failed to update contact")
	}

	return contact, nil
}

func (srv *contactService) Delete(ctx context.Context, id string) error {
	if err := srv.contactRepo.Delete(ctx, id); err != nil {
		return lookupError(err, repository.ErrContactNotFound, domainerrors.ErrContactNotFound, "failed to delete contact")
	}

	srv.log(ctx).Info("Contact deleted", slog.String("contact_id", id))

	return nil
}

// missingFields takes name/value pairs and joins the names whose value is empty.
func missingFields(pairs ...string) string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, pairs[i])
		}
	}

	return strings.Join(missing, ", ")
}
