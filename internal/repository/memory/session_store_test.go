package memory_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/domain"
	"dealdesk/internal/port"
	"dealdesk/internal/repository/memory"
)

func seedSession(t *testing.T, store port.SessionStore, fileIDs ...string) uuid.UUID {
	t.Helper()
	sess := store.Create()
	files := make([]domain.FileDescriptor, 0, len(fileIDs))
	for _, id := range fileIDs {
		files = append(files, domain.FileDescriptor{ID: id, Name: id + ".pdf", Type: "application/pdf", Size: 100})
	}
	_, err := store.AddFiles(sess.ID, files)
	require.NoError(t, err)
	return sess.ID
}

func completedResult(analysisID string, confidence float64) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		AnalysisID: analysisID,
		Status:     domain.StatusCompleted,
		Confidence: confidence,
	}
}

func TestCreateAndGet(t *testing.T) {
	store := memory.NewSessionStore()

	sess := store.Create()
	require.NotNil(t, sess)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Empty(t, sess.Files)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = store.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAddFiles_MarksProcessing(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1", "f2")

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.True(t, sess.Processing)
	require.Len(t, sess.Files, 2)
	assert.Equal(t, domain.StatusPending, sess.Files[0].Status)
}

func TestSetStatus_ForwardOnly(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")

	require.NoError(t, store.SetStatus(id, "f1", domain.StatusProcessing))
	require.NoError(t, store.RecordResult(id, "f1", completedResult("an-1", 90)))

	// Terminal back to processing is rejected.
	err := store.SetStatus(id, "f1", domain.StatusProcessing)
	assert.ErrorIs(t, err, domain.ErrStatusTransition)

	// Terminal states stay inter-movable (feedback can shift them).
	assert.NoError(t, store.SetStatus(id, "f1", domain.StatusRequiresReview))
}

func TestSetStatus_UnknownFileIsNoop(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")

	assert.NoError(t, store.SetStatus(id, "ghost", domain.StatusProcessing))

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, sess.Files[0].Status)
}

func TestRecordResult_NonTerminalStatusCoercedToCompleted(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")

	result := completedResult("an-1", 85)
	result.Status = domain.StatusProcessing
	require.NoError(t, store.RecordResult(id, "f1", result))

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, sess.Files[0].Status)
}

func TestRecordFailure_IsolatesFile(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1", "f2")

	require.NoError(t, store.RecordFailure(id, "f1", errors.New("engine timeout")))
	require.NoError(t, store.RecordResult(id, "f2", completedResult("an-2", 90)))

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, sess.Files[0].Status)
	assert.Equal(t, "engine timeout", sess.Files[0].Error)
	assert.Equal(t, domain.StatusCompleted, sess.Files[1].Status)
}

func TestReplaceResult_ByAnalysisID(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")
	require.NoError(t, store.RecordResult(id, "f1", completedResult("an-1", 70)))

	updated := completedResult("an-1", 95)
	updated.Status = domain.StatusRequiresReview
	require.NoError(t, store.ReplaceResult(id, "an-1", updated))

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRequiresReview, sess.Files[0].Status)
	assert.Equal(t, 95.0, sess.Files[0].Result.Confidence)

	err = store.ReplaceResult(id, "an-ghost", updated)
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestFindByAnalysisID(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")
	require.NoError(t, store.RecordResult(id, "f1", completedResult("an-1", 88)))

	foundID, result, err := store.FindByAnalysisID("an-1")
	require.NoError(t, err)
	assert.Equal(t, id, foundID)
	assert.Equal(t, 88.0, result.Confidence)

	_, _, err = store.FindByAnalysisID("an-ghost")
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestFinishProcessing(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")

	require.NoError(t, store.FinishProcessing(id))

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.False(t, sess.Processing)
	assert.NotNil(t, sess.CompletedAt)
}

func TestStats_EmptySessionIsZeroSafe(t *testing.T) {
	store := memory.NewSessionStore()
	sess := store.Create()

	stats, err := store.Stats(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalFiles)
	assert.Equal(t, 0, stats.Analyzed)
	assert.Equal(t, 0.0, stats.AverageConfidence)
}

func TestStats_CountsSettledResultsOnly(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1", "f2", "f3")

	require.NoError(t, store.RecordResult(id, "f1", completedResult("an-1", 90)))
	require.NoError(t, store.RecordResult(id, "f2", completedResult("an-2", 60)))
	// f3 never settles.

	stats, err := store.Stats(id)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 2, stats.Analyzed)
	assert.Equal(t, 1, stats.HighConfidence)
	assert.Equal(t, 75.0, stats.AverageConfidence)
}

func TestSnapshotIsolation(t *testing.T) {
	store := memory.NewSessionStore()
	id := seedSession(t, store, "f1")
	require.NoError(t, store.RecordResult(id, "f1", completedResult("an-1", 90)))

	sess, err := store.Get(id)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	sess.Files[0].Status = domain.StatusFailed
	sess.Files[0].Result.Confidence = 1

	fresh, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, fresh.Files[0].Status)
	assert.Equal(t, 90.0, fresh.Files[0].Result.Confidence)
}
