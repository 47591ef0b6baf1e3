package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrProfileNotFound means the user has no profile row of the requested kind.
// Handlers map it to a 404.
var ErrProfileNotFound = errors.New("profile not found")

// profileTables is the closed set of tables a profile lookup may touch. The
// table name is interpolated into SQL, so it must come from this list.
var profileTables = map[string]string{
	"patient": "patient",
	"doctor":  "doctor",
	"staff":   "staff_member",
}

// Resolver answers "which profile row belongs to this user" for the tables
// that hang off user_account. Every handler that needs the caller's own
// patient, doctor, or staff id goes through here.
type Resolver struct {
	pool *pgxpool.Pool
}

func NewResolver(pool *pgxpool.Pool) *Resolver {
	return &Resolver{pool: pool}
}

func (r *Resolver) PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return r.profileID(ctx, "patient", userID)
}

func (r *Resolver) DoctorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return r.profileID(ctx, "doctor", userID)
}

func (r *Resolver) StaffIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return r.profileID(ctx, "staff", userID)
}

func (r *Resolver) profileID(ctx context.Context, kind string, userID uuid.UUID) (uuid.UUID, error) {
	table, ok := profileTables[kind]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown profile kind: %s", kind)
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM `+table+` WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrProfileNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}
