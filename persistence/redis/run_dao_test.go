package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
)

func TestRedisRunStore(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, store *redisRunStore,
	){
		"test save and get":      testRunSaveGet,
		"test delete":            testRunDelete,
		"test get missing":       testRunGetMissing,
		"test mutation survives": testRunMutation,
	} {
		t.Run(scenario, func(t *testing.T) {
			mr := miniredis.RunT(t)
			conf := Config{
				Addrs:     []string{mr.Addr()},
				Namespace: "test",
			}
			fn(t, NewRedisRunStore(conf, 30*time.Minute))
		})
	}
}

func testRunSaveGet(t *testing.T, store *redisRunStore) {
	record := model.NewSubmissionRecord("run-1", "card-redemption")
	record.Values["cardCode"] = "OK-0001"
	require.NoError(t, store.Save(record))

	loaded, err := store.Get("run-1")
	require.NoError(t, err)
	require.Equal(t, "card-redemption", loaded.Workflow)
	require.Equal(t, "OK-0001", loaded.Values["cardCode"])
	require.Equal(t, model.RUN_RUNNING, loaded.State)
}

func testRunDelete(t *testing.T, store *redisRunStore) {
	record := model.NewSubmissionRecord("run-2", "login")
	require.NoError(t, store.Save(record))
	require.NoError(t, store.Delete("run-2"))

	_, err := store.Get("run-2")
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)
}

func testRunGetMissing(t *testing.T, store *redisRunStore) {
	_, err := store.Get("missing")
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)
}

func testRunMutation(t *testing.T, store *redisRunStore) {
	record := model.NewSubmissionRecord("run-3", "redemption-details")
	require.NoError(t, store.Save(record))

	record.Step = 1
	record.Values["accountName"] = "Ada Obi"
	require.NoError(t, store.Save(record))

	loaded, err := store.Get("run-3")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Step)
	require.Equal(t, "Ada Obi", loaded.Values["accountName"])
}

func TestRedisMetadataStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	conf := Config{
		Addrs:     []string{mr.Addr()},
		Namespace: "test",
	}
	storage := NewRedisMetadataStorage(conf)

	def := model.WorkflowDefinition{
		Name:  "test-flow",
		Steps: []model.StepDefinition{{Label: "One", Fields: []string{"a"}}},
		Fields: []model.FieldSpec{
			{Name: "a", Kind: model.FIELD_KIND_STRING, Required: true},
		},
		SuccessMessage: "done",
	}
	require.NoError(t, storage.SaveWorkflowDefinition(def))

	loaded, err := storage.GetWorkflowDefinition("test-flow")
	require.NoError(t, err)
	require.Equal(t, def.Name, loaded.Name)
	require.Len(t, loaded.Fields, 1)

	require.NoError(t, storage.DeleteWorkflowDefinition("test-flow"))
	_, err = storage.GetWorkflowDefinition("test-flow")
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)
}
