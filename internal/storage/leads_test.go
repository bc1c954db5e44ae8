package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnav/finnav/internal/domain"
)

func testRepository(t *testing.T) *LeadRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewLeadRepository(db, zerolog.Nop())
}

func capturedProfile() domain.Profile {
	age := 35
	income := decimal.NewFromInt(3000)
	return domain.Profile{
		Meta: domain.Meta{SessionID: "sess-1", IsFinished: true},
		Basic: domain.Basic{
			Age:           &age,
			HouseholdType: domain.HouseholdCouple,
			Employment:    domain.EmploymentEmployed,
		},
		Cashflow: domain.Cashflow{NetIncomeMonthly: &income},
		Scores: domain.Scores{
			Liquidity: 20, Wealth: 95, Protection: 30, Retirement: 10, Debt: 100, Overall: 51,
		},
		RecommendedModules: []domain.ModuleID{domain.ModulePension, domain.ModuleRisk},
		Lead: domain.Lead{
			Name: "Maria Huber", Email: "maria@example.com", Phone: "+43 660 1234567", Consent: true,
		},
	}
}

func TestLeadUpsertAndGet(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, capturedProfile()))

	rec, err := repo.GetBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Maria Huber", rec.Name)
	assert.Equal(t, "maria@example.com", rec.Email)
	assert.True(t, rec.Consent)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 35, *rec.Age)
	assert.Equal(t, "couple", rec.HouseholdType)
	assert.Equal(t, 51, rec.Scores.Overall)
	assert.Equal(t, []domain.ModuleID{domain.ModulePension, domain.ModuleRisk}, rec.RecommendedModules)
	assert.False(t, rec.CreatedAt.IsZero())

	// The snapshot keeps everything the flat columns drop.
	require.NotNil(t, rec.Profile.Cashflow.NetIncomeMonthly)
	assert.True(t, rec.Profile.Cashflow.NetIncomeMonthly.Equal(decimal.NewFromInt(3000)))
	assert.True(t, rec.Profile.Meta.IsFinished)
}

func TestLeadUpsertReplacesEarlierSubmission(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	first := capturedProfile()
	require.NoError(t, repo.Upsert(ctx, first))

	second := capturedProfile()
	second.Lead.Email = "maria.huber@example.com"
	second.Scores.Overall = 63
	require.NoError(t, repo.Upsert(ctx, second))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "Same session must not create a second row")

	rec, err := repo.GetBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "maria.huber@example.com", rec.Email)
	assert.Equal(t, 63, rec.Scores.Overall)
}

func TestLeadUpsertRejectsIncompleteLead(t *testing.T) {
	repo := testRepository(t)

	p := capturedProfile()
	p.Lead.Email = ""

	err := repo.Upsert(context.Background(), p)
	assert.ErrorContains(t, err, "name and email are required")
}

func TestGetBySessionIDUnknown(t *testing.T) {
	repo := testRepository(t)

	rec, err := repo.GetBySessionID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, rec, "Unknown session returns nil without an error")
}

func TestLeadWithoutOptionalFields(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	p := capturedProfile()
	p.Basic.Age = nil
	p.RecommendedModules = nil
	require.NoError(t, repo.Upsert(ctx, p))

	rec, err := repo.GetBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.Age)
	assert.Empty(t, rec.RecommendedModules)
}
