package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/finnav/finnav/internal/domain"
)

// LeadRecord is the flattened row stored for one captured lead. The full
// profile is kept alongside as a JSON snapshot so the flat columns never have
// to be complete.
type LeadRecord struct {
	SessionID          string
	Name               string
	Email              string
	Phone              string
	Consent            bool
	Age                *int
	HouseholdType      string
	Employment         string
	Scores             domain.Scores
	RecommendedModules []domain.ModuleID
	Profile            domain.Profile
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LeadRepository handles lead persistence.
type LeadRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewLeadRepository creates a lead repository.
func NewLeadRepository(db *DB, log zerolog.Logger) *LeadRepository {
	return &LeadRepository{
		db:  db.Conn(),
		log: log.With().Str("repository", "leads").Logger(),
	}
}

// Upsert stores the lead and assessment snapshot for a session, replacing any
// earlier submission for the same session id.
func (r *LeadRepository) Upsert(ctx context.Context, p domain.Profile) error {
	if !p.Lead.Captured() {
		return fmt.Errorf("lead for session %s is incomplete: name and email are required", p.Meta.SessionID)
	}
	if p.Meta.SessionID == "" {
		return fmt.Errorf("profile has no session id")
	}

	profileJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	modules := make([]string, len(p.RecommendedModules))
	for i, m := range p.RecommendedModules {
		modules[i] = string(m)
	}

	now := time.Now().Unix()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO leads (
			session_id, name, email, phone, consent,
			age, household_type, employment,
			score_overall, score_liquidity, score_wealth, score_protection, score_retirement, score_debt,
			recommended_modules, profile_json, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			consent = excluded.consent,
			age = excluded.age,
			household_type = excluded.household_type,
			employment = excluded.employment,
			score_overall = excluded.score_overall,
			score_liquidity = excluded.score_liquidity,
			score_wealth = excluded.score_wealth,
			score_protection = excluded.score_protection,
			score_retirement = excluded.score_retirement,
			score_debt = excluded.score_debt,
			recommended_modules = excluded.recommended_modules,
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at
	`,
		p.Meta.SessionID, p.Lead.Name, p.Lead.Email, p.Lead.Phone, p.Lead.Consent,
		nullableInt(p.Basic.Age), string(p.Basic.HouseholdType), string(p.Basic.Employment),
		p.Scores.Overall, p.Scores.Liquidity, p.Scores.Wealth, p.Scores.Protection, p.Scores.Retirement, p.Scores.Debt,
		strings.Join(modules, ","), string(profileJSON), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert lead for session %s: %w", p.Meta.SessionID, err)
	}

	r.log.Info().
		Str("session_id", p.Meta.SessionID).
		Int("score_overall", p.Scores.Overall).
		Msg("Lead stored")

	return nil
}

// GetBySessionID returns the stored lead for a session, or nil when none exists.
func (r *LeadRepository) GetBySessionID(ctx context.Context, sessionID string) (*LeadRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT session_id, name, email, phone, consent,
			age, household_type, employment,
			score_overall, score_liquidity, score_wealth, score_protection, score_retirement, score_debt,
			recommended_modules, profile_json, created_at, updated_at
		FROM leads WHERE session_id = ?
	`, sessionID)

	var (
		rec         LeadRecord
		age         sql.NullInt64
		modules     string
		profileJSON string
		createdAt   int64
		updatedAt   int64
	)
	err := row.Scan(
		&rec.SessionID, &rec.Name, &rec.Email, &rec.Phone, &rec.Consent,
		&age, &rec.HouseholdType, &rec.Employment,
		&rec.Scores.Overall, &rec.Scores.Liquidity, &rec.Scores.Wealth,
		&rec.Scores.Protection, &rec.Scores.Retirement, &rec.Scores.Debt,
		&modules, &profileJSON, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead for session %s: %w", sessionID, err)
	}

	if age.Valid {
		v := int(age.Int64)
		rec.Age = &v
	}
	if modules != "" {
		for _, m := range strings.Split(modules, ",") {
			rec.RecommendedModules = append(rec.RecommendedModules, domain.ModuleID(m))
		}
	}
	if err := json.Unmarshal([]byte(profileJSON), &rec.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile snapshot for session %s: %w", sessionID, err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	rec.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &rec, nil
}

// Count returns the number of stored leads.
func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM leads").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return n, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
