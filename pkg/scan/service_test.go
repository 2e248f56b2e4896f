package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tablegrape/entities"
	"tablegrape/pkg/ai"
	logrepoimp "tablegrape/pkg/logbook/repositoryImp"
)

const validAnalysis = `{
	"stage": "fruit_set",
	"issues": [
		{"name": "sunburn", "severity": 2, "confidence": 0.8},
		{"name": "mildew-like signs", "severity": 1, "confidence": 0.6}
	],
	"summary": "Some sunburn spots on young berries.",
	"next_actions": ["Check canopy coverage", "Monitor for mildew development"]
}`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Farm{}, &entities.ScoutingLog{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, client ai.Client) *Service {
	t.Helper()
	return NewService(logrepoimp.New(db), client, t.TempDir(), zerolog.Nop())
}

func seedFarm(t *testing.T, db *gorm.DB, lang string) *entities.Farm {
	t.Helper()
	f := &entities.Farm{Name: "Test Farm", PreferredLanguage: lang}
	require.NoError(t, db.Create(f).Error)
	return f
}

func TestAnalyzeSuccess(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(ai.MockResponse{Content: validAnalysis})
	svc := newTestService(t, db, client)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.jpg", "spots on east rows", "en")
	require.NoError(t, err)
	assert.Equal(t, "fruit_set", res.Stage)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, "sunburn", res.Issues[0].Name)
	assert.True(t, strings.HasPrefix(res.PhotoPath, "uploads/"))
	assert.True(t, strings.HasSuffix(res.PhotoPath, ".jpg"))

	// upload written to disk
	saved, err := os.ReadFile(filepath.Join(svc.uploadDir, filepath.Base(res.PhotoPath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), saved)

	// scouting log side effect with the top-severity issue
	var logs []entities.ScoutingLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "sunburn", logs[0].IssueType)
	assert.Equal(t, 2, logs[0].Severity)
	require.NotNil(t, logs[0].PhotoPath)
	assert.Equal(t, res.PhotoPath, *logs[0].PhotoPath)
	assert.Contains(t, logs[0].Notes, "Some sunburn spots")
	assert.Contains(t, logs[0].Notes, "User notes: spots on east rows")
}

func TestAnalyzeRetryOnMalformedJSON(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(
		ai.MockResponse{Content: "sorry, here is my analysis:"},
		ai.MockResponse{Content: "```json\n" + validAnalysis + "\n```"},
	)
	svc := newTestService(t, db, client)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.png", "", "en")
	require.NoError(t, err)
	assert.Equal(t, "fruit_set", res.Stage)
	require.Len(t, client.Calls, 2)
	assert.Contains(t, client.Calls[1], "Return ONLY valid JSON")
}

func TestAnalyzeFallbackAfterTwoMalformed(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "hi")
	client := ai.NewMock(ai.MockResponse{Content: "not json"})
	svc := newTestService(t, db, client)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.jpg", "", "")
	require.NoError(t, err)
	assert.Len(t, client.Calls, 2)
	assert.Equal(t, "unknown", res.Stage)
	assert.Empty(t, res.Issues)
	assert.Equal(t, fallbackResult("hi").Summary, res.Summary, "fallback follows farm language")
	assert.NotEmpty(t, res.PhotoPath)
}

func TestAnalyzeFallbackImmediatelyOnTransportError(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(ai.MockResponse{Err: errors.New("vision down")})
	svc := newTestService(t, db, client)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.jpg", "", "es")
	require.NoError(t, err)
	assert.Len(t, client.Calls, 1)
	assert.Equal(t, fallbackResult("es").Summary, res.Summary)
}

func TestAnalyzeFallbackWithoutClient(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	svc := newTestService(t, db, nil)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.jpg", "", "")
	require.NoError(t, err)
	assert.Equal(t, "unknown", res.Stage)

	// fallback scan still records a scouting log
	var logs []entities.ScoutingLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "unknown", logs[0].IssueType)
	assert.Equal(t, 0, logs[0].Severity)
}

func TestAnalyzeCapsIssuesAndActions(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	content := `{
		"stage": "veraison",
		"issues": [
			{"name": "a", "severity": 1, "confidence": 0.5},
			{"name": "b", "severity": 1, "confidence": 0.5},
			{"name": "c", "severity": 1, "confidence": 0.5},
			{"name": "d", "severity": 1, "confidence": 0.5},
			{"name": "e", "severity": 1, "confidence": 0.5},
			{"name": "f", "severity": 1, "confidence": 0.5}
		],
		"summary": "many findings",
		"next_actions": ["1", "2", "3", "4", "5", "6", "7"]
	}`
	client := ai.NewMock(ai.MockResponse{Content: content})
	svc := newTestService(t, db, client)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.jpg", "", "en")
	require.NoError(t, err)
	assert.Len(t, res.Issues, 5)
	assert.Len(t, res.NextActions, 5)
}

func TestAnalyzeMissingKeysFallsBack(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(ai.MockResponse{Content: `{"stage": "harvest", "summary": "no issues key"}`})
	svc := newTestService(t, db, client)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "leaf.jpg", "", "en")
	require.NoError(t, err)
	assert.Len(t, client.Calls, 1, "schema failures are not retried")
	assert.Equal(t, "unknown", res.Stage)
}

func TestAnalyzeDefaultsExtension(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	svc := newTestService(t, db, nil)

	res, err := svc.Analyze(context.Background(), farm, nil, []byte("img"), "photo", "", "en")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.PhotoPath, ".jpg"))
}
