//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	_, _ = db.pool.Exec(ctx, "DELETE FROM analyses WHERE job_url LIKE '%test.example.com%'")
	return db
}

func TestIntegration_Analysis_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	input := &AnalysisInput{
		JobURL:         "https://test.example.com/jobs/" + uuid.New().String(),
		JobTitle:       "Backend Engineer",
		ResumeFilename: "resume.pdf",
		ResumeContent:  "Go developer",
		JobContent:     "Requires Go and Kubernetes",
		RawResponse:    "**1. Current Score (0-100):** 60\n**2. Target Score:** 85",
		Recommendations: []types.Recommendation{
			{Score: &types.ScoreRecord{Current: 60, Target: 85}},
			{Section: &types.Section{ID: types.SectionMissingSkills, Title: "Missing Skills", RawBody: "* Kubernetes", Body: "Kubernetes"}},
		},
		Model: "gemini-2.0-flash",
	}

	saved, err := db.SaveAnalysis(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, "unknown", saved.JobPlatform)
	require.NotNil(t, saved.CurrentScore)
	assert.Equal(t, 60, *saved.CurrentScore)

	t.Run("get by id", func(t *testing.T) {
		got, err := db.GetAnalysis(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, input.JobURL, got.JobURL)
		assert.Equal(t, input.Recommendations, got.Recommendations)
		assert.Equal(t, 85, *got.TargetScore)
	})

	t.Run("missing id", func(t *testing.T) {
		got, err := db.GetAnalysis(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list", func(t *testing.T) {
		list, err := db.ListAnalyses(ctx, 10, 0)
		require.NoError(t, err)
		found := false
		for _, s := range list {
			if s.ID == saved.ID {
				found = true
				assert.Equal(t, "Backend Engineer", s.JobTitle)
			}
		}
		assert.True(t, found)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, db.DeleteAnalysis(ctx, saved.ID))
		got, err := db.GetAnalysis(ctx, saved.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestIntegration_Migrate_Idempotent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	require.NoError(t, db.Migrate(context.Background()))
}
