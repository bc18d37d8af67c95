package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	TokenRepository             *TokenRepository
	VerificationTokenRepository *VerificationTokenRepository
	PostRepository              *PostRepository
	CareerRepository            *CareerRepository
	EventRequestRepository      *EventRequestRepository
	ApprovalRepository          *ApprovalRepository
	BookingRepository           *BookingRepository
	PaymentRepository           *PaymentRepository
	NotificationRepository      *NotificationRepository
	LeaderboardRepository       *LeaderboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		TokenRepository:             NewTokenRepository(db),
		VerificationTokenRepository: NewVerificationTokenRepository(db),
		PostRepository:              NewPostRepository(db),
		CareerRepository:            NewCareerRepository(db),
		EventRequestRepository:      NewEventRequestRepository(db),
		ApprovalRepository:          NewApprovalRepository(db),
		BookingRepository:           NewBookingRepository(db),
		PaymentRepository:           NewPaymentRepository(db),
		NotificationRepository:      NewNotificationRepository(db),
		LeaderboardRepository:       NewLeaderboardRepository(db),
	}
}
