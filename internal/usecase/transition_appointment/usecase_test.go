package transition_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

const testSecret = "test-secret"

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) GetAppointmentByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepository) UpdateAppointmentStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.NewAuthorizer(testSecret, time.Hour).IssueToken("admin@salon.test")
	require.NoError(t, err)
	return token
}

func newStoreWithAppointment(t *testing.T) (*memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	a, err := store.InsertAppointmentIfNoOverlap(context.Background(), &domain.Appointment{
		ServiceID:       1,
		CustomerName:    "Anna",
		CustomerPhone:   "+79001112233",
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		ServiceName:     "Haircut",
	}, domain.Placement{StaffIDs: []int64{1}})
	require.NoError(t, err)
	return store, a.ID
}

func TestExecute_ConfirmThenCancel(t *testing.T) {
	store, id := newStoreWithAppointment(t)
	uc := NewUseCase(store, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())
	token := adminToken(t)

	resp, err := uc.Execute(context.Background(), &Request{Credential: token, AppointmentID: id, Action: domain.ActionConfirm})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.PreviousStatus)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, "admin@salon.test", resp.ChangedBy)

	resp, err = uc.Execute(context.Background(), &Request{Credential: token, AppointmentID: id, Action: domain.ActionCancel})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
}

func TestExecute_InvalidTransitions(t *testing.T) {
	store, id := newStoreWithAppointment(t)
	uc := NewUseCase(store, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())
	token := adminToken(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{Credential: token, AppointmentID: id, Action: domain.ActionCancel})
	require.NoError(t, err)

	for _, action := range []domain.AppointmentAction{domain.ActionConfirm, domain.ActionCancel} {
		_, err = uc.Execute(ctx, &Request{Credential: token, AppointmentID: id, Action: action})
		require.ErrorIs(t, err, domain.ErrInvalidTransition)

		var te *domain.TransitionError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, domain.StatusCancelled, te.From)
		assert.Equal(t, action, te.Action)
	}

	stored, err := store.GetAppointmentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestExecute_ConfirmedCannotBeConfirmedAgain(t *testing.T) {
	store, id := newStoreWithAppointment(t)
	uc := NewUseCase(store, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())
	token := adminToken(t)

	_, err := uc.Execute(context.Background(), &Request{Credential: token, AppointmentID: id, Action: domain.ActionConfirm})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{Credential: token, AppointmentID: id, Action: domain.ActionConfirm})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestExecute_Unauthorized(t *testing.T) {
	store, id := newStoreWithAppointment(t)
	uc := NewUseCase(store, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())

	foreign, _, err := auth.NewAuthorizer("other-secret", time.Hour).IssueToken("admin@salon.test")
	require.NoError(t, err)

	for _, credential := range []string{"", "garbage", foreign} {
		_, err := uc.Execute(context.Background(), &Request{Credential: credential, AppointmentID: id, Action: domain.ActionConfirm})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}

	stored, err := store.GetAppointmentByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestExecute_NotFound(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Credential: adminToken(t), AppointmentID: 404, Action: domain.ActionCancel})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Credential: adminToken(t), AppointmentID: 1, Action: "delete"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Credential: adminToken(t), Action: domain.ActionCancel})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_LostRaceReportsCurrentStatus(t *testing.T) {
	repo := &mockAppointmentRepository{}
	uc := NewUseCase(repo, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())
	ctx := context.Background()

	pending := &domain.Appointment{ID: 7, Status: domain.StatusPending}
	cancelled := &domain.Appointment{ID: 7, Status: domain.StatusCancelled}

	// между чтением и обновлением запись успели отменить
	repo.On("GetAppointmentByID", ctx, int64(7)).Return(pending, nil).Once()
	repo.On("UpdateAppointmentStatus", ctx, int64(7), domain.StatusPending, domain.StatusConfirmed).Return(false, nil).Once()
	repo.On("GetAppointmentByID", ctx, int64(7)).Return(cancelled, nil).Once()

	_, err := uc.Execute(ctx, &Request{Credential: adminToken(t), AppointmentID: 7, Action: domain.ActionConfirm})

	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.StatusCancelled, te.From)
	repo.AssertExpectations(t)
}

func TestExecute_StorageFailure(t *testing.T) {
	repo := &mockAppointmentRepository{}
	uc := NewUseCase(repo, auth.NewAuthorizer(testSecret, time.Hour), logger.NewNop())
	ctx := context.Background()

	repo.On("GetAppointmentByID", ctx, int64(7)).Return(&domain.Appointment{ID: 7, Status: domain.StatusPending}, nil).Once()
	repo.On("UpdateAppointmentStatus", ctx, int64(7), domain.StatusPending, domain.StatusCancelled).
		Return(false, errors.New("connection reset")).Once()

	_, err := uc.Execute(ctx, &Request{Credential: adminToken(t), AppointmentID: 7, Action: domain.ActionCancel})
	assert.ErrorIs(t, err, ErrInternal)
	repo.AssertExpectations(t)
}
