package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tablegrape/entities"
	"tablegrape/pkg/ai"
	"tablegrape/pkg/cache"
	chatrepoimp "tablegrape/pkg/chat/repositoryImp"
	farmrepoimp "tablegrape/pkg/farm/repositoryImp"
	logrepoimp "tablegrape/pkg/logbook/repositoryImp"
	statusrepoimp "tablegrape/pkg/status/repositoryImp"
	"tablegrape/pkg/weather"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Farm{},
		&entities.Block{},
		&entities.CropStatus{},
		&entities.ScoutingLog{},
		&entities.IrrigationLog{},
		&entities.BrixSample{},
		&entities.SprayLog{},
		&entities.ChatSession{},
		&entities.ChatMessage{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, client ai.Client) *Service {
	t.Helper()
	w := weather.NewService(nil, cache.New[weather.Forecast](time.Minute), zerolog.Nop())
	return NewService(
		chatrepoimp.New(db),
		farmrepoimp.New(db),
		statusrepoimp.New(db),
		logrepoimp.New(db),
		w, client, DefaultPhrases(), zerolog.Nop(),
	)
}

func seedFarm(t *testing.T, db *gorm.DB, lang string) *entities.Farm {
	t.Helper()
	f := &entities.Farm{Name: "Test Farm", Lat: 19.1, Lon: 74.7, PreferredLanguage: lang}
	require.NoError(t, db.Create(f).Error)
	return f
}

func TestSendMessageScriptedIntents(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(ai.MockResponse{Content: "model reply"})
	svc := newTestService(t, db, client)

	reply, _, err := svc.SendMessage(context.Background(), farm, "", "ok", "")
	require.NoError(t, err)
	assert.Equal(t, ackReply("en"), reply)

	reply, _, err = svc.SendMessage(context.Background(), farm, "", "hello there", "")
	require.NoError(t, err)
	assert.Equal(t, greetingReply("en"), reply)

	reply, _, err = svc.SendMessage(context.Background(), farm, "", "what's new", "")
	require.NoError(t, err)
	assert.Equal(t, whatsNewReply("en"), reply)

	// none of the scripted intents reached the model
	assert.Empty(t, client.Calls)
}

func TestSendMessageGeneralGoesToModel(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(ai.MockResponse{Content: "Water early in the morning."})
	svc := newTestService(t, db, client)

	reply, _, err := svc.SendMessage(context.Background(), farm, "", "thanks for the detailed irrigation advice", "")
	require.NoError(t, err)
	assert.Equal(t, "Water early in the morning.", reply)
	require.Len(t, client.Calls, 1)
	// "irrigation" is a context keyword, so the prompt carries the bundle
	assert.Contains(t, client.Calls[0], "Farm context")
	assert.Contains(t, client.Calls[0], "Test Farm")
}

func TestSendMessageNoContextForSmallTalk(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	client := ai.NewMock(ai.MockResponse{Content: "I'm doing well!"})
	svc := newTestService(t, db, client)

	_, _, err := svc.SendMessage(context.Background(), farm, "", "how are you doing today my friend", "")
	require.NoError(t, err)
	require.Len(t, client.Calls, 1)
	assert.NotContains(t, client.Calls[0], "Farm context")
}

func TestSendMessageFallbackWhenModelFails(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "hi")
	client := ai.NewMock(ai.MockResponse{Err: errors.New("boom")})
	svc := newTestService(t, db, client)

	reply, _, err := svc.SendMessage(context.Background(), farm, "", "my grapes have a problem", "")
	require.NoError(t, err)
	assert.Equal(t, unavailableReply("hi"), reply)
}

func TestSendMessageFallbackWithoutClient(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "")
	svc := newTestService(t, db, nil)

	reply, _, err := svc.SendMessage(context.Background(), farm, "", "my grapes have a problem", "es")
	require.NoError(t, err)
	assert.Equal(t, unavailableReply("es"), reply)
}

func TestSendMessageSessionHandling(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	svc := newTestService(t, db, nil)

	_, sid1, err := svc.SendMessage(context.Background(), farm, "", "hello", "")
	require.NoError(t, err)
	_, sid2, err := svc.SendMessage(context.Background(), farm, "", "hello", "")
	require.NoError(t, err)
	assert.NotEmpty(t, sid1)
	assert.NotEqual(t, sid1, sid2, "omitting the session id starts a fresh session")

	_, sid3, err := svc.SendMessage(context.Background(), farm, sid1, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, sid1, sid3)

	var sessions int64
	require.NoError(t, db.Model(&entities.ChatSession{}).Count(&sessions).Error)
	assert.EqualValues(t, 2, sessions)
}

func TestHistoryOrderAndPersistence(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	svc := newTestService(t, db, nil)

	_, sid, err := svc.SendMessage(context.Background(), farm, "", "hello", "")
	require.NoError(t, err)
	_, _, err = svc.SendMessage(context.Background(), farm, sid, "ok", "")
	require.NoError(t, err)

	msgs, err := svc.History(farm.ID, 30)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{"user", "assistant", "user", "assistant"},
		[]string{msgs[0].Role, msgs[1].Role, msgs[2].Role, msgs[3].Role})
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "ok", msgs[2].Content)

	limited, err := svc.History(farm.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestClearDeletesMessagesAndSessions(t *testing.T) {
	db := newTestDB(t)
	farm := seedFarm(t, db, "en")
	other := seedFarm(t, db, "en")
	svc := newTestService(t, db, nil)

	_, _, err := svc.SendMessage(context.Background(), farm, "", "hello", "")
	require.NoError(t, err)
	_, _, err = svc.SendMessage(context.Background(), other, "", "hello", "")
	require.NoError(t, err)

	deleted, err := svc.Clear(farm.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	msgs, err := svc.History(farm.ID, 30)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	otherMsgs, err := svc.History(other.ID, 30)
	require.NoError(t, err)
	assert.Len(t, otherMsgs, 2, "other farms keep their history")
}
