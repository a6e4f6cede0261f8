package cardsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/cardsync"
	"codeberg.org/snonux/lingoanki/internal/testutil"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

func testConfig() *anki.Config {
	cfg := anki.DefaultConfig()
	cfg.Templates = anki.Templates{Front: "{{word}}", Back: "{{translation}}"}
	return cfg
}

func newOrchestrator(cfg *anki.Config, st *testutil.MockEntryStore, br *testutil.MockBridge) (*cardsync.Orchestrator, *testutil.MockNotifier) {
	n := &testutil.MockNotifier{}
	return cardsync.New(cfg, st, br, cardsync.WithNotifier(n)), n
}

func TestStatus_InProgress(t *testing.T) {
	tests := []struct {
		status cardsync.Status
		want   bool
	}{
		{cardsync.StatusIdle, false},
		{cardsync.StatusTesting, true},
		{cardsync.StatusProcessing, true},
		{cardsync.StatusSuccess, false},
		{cardsync.StatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.InProgress())
		})
	}
}

func TestNew_StartsIdle(t *testing.T) {
	o, _ := newOrchestrator(nil, &testutil.MockEntryStore{}, &testutil.MockBridge{})

	for _, w := range cardsync.Workflows {
		assert.Equal(t, cardsync.StatusIdle, o.Status(w), "workflow %s", w)
	}
	assert.Equal(t, anki.DefaultDeckName, o.Config().DeckName)
}

func TestTestConnection(t *testing.T) {
	br := &testutil.MockBridge{Version: "6"}
	o, n := newOrchestrator(testConfig(), &testutil.MockEntryStore{}, br)

	res, err := o.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "6", res.Version)
	assert.Equal(t, cardsync.StatusSuccess, o.Status(cardsync.WorkflowConnection))
	assert.Equal(t, []string{"ping " + anki.DefaultURL}, br.Calls)

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, cardsync.LevelSuccess, last.Level)
	assert.Contains(t, last.Message, "6")
}

func TestTestConnection_Failure(t *testing.T) {
	boom := errors.New("connection refused")
	br := &testutil.MockBridge{PingErr: boom}
	o, n := newOrchestrator(testConfig(), &testutil.MockEntryStore{}, br)

	res, err := o.TestConnection(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, cardsync.StatusFailed, o.Status(cardsync.WorkflowConnection))

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, cardsync.LevelError, last.Level)
	assert.Contains(t, last.Message, "connection refused")
}

type workflowCase struct {
	name       string
	workflow   cardsync.Workflow
	inProgress cardsync.Status
	run        func(context.Context, *cardsync.Orchestrator) error
}

var workflowCases = []workflowCase{
	{"connection", cardsync.WorkflowConnection, cardsync.StatusTesting, func(ctx context.Context, o *cardsync.Orchestrator) error {
		_, err := o.TestConnection(ctx)
		return err
	}},
	{"export", cardsync.WorkflowExport, cardsync.StatusProcessing, func(ctx context.Context, o *cardsync.Orchestrator) error {
		_, err := o.ExportCards(ctx, vocab.LearningWord)
		return err
	}},
	{"progress", cardsync.WorkflowProgress, cardsync.StatusProcessing, func(ctx context.Context, o *cardsync.Orchestrator) error {
		_, err := o.SyncProgress(ctx)
		return err
	}},
}

// gatedFixture holds every bridge call until the gate is closed
func gatedFixture(entered int) (*testutil.MockEntryStore, *testutil.MockBridge) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{
		testutil.Entry("1", "serendipity", vocab.LearningWord),
	}}
	br := &testutil.MockBridge{
		Version: "6",
		Cards:   []anki.Card{testutil.Card(10, "<b>serendipity</b>")},
		Gate:    make(chan struct{}),
		Entered: make(chan string, entered),
	}
	return st, br
}

func TestWorkflows_RejectRetrigger(t *testing.T) {
	for _, tt := range workflowCases {
		t.Run(tt.name, func(t *testing.T) {
			st, br := gatedFixture(1)
			o, _ := newOrchestrator(testConfig(), st, br)
			ctx := context.Background()

			done := make(chan error, 1)
			go func() { done <- tt.run(ctx, o) }()

			<-br.Entered
			assert.Equal(t, tt.inProgress, o.Status(tt.workflow))

			err := tt.run(ctx, o)
			assert.ErrorIs(t, err, cardsync.ErrInProgress)
			assert.Equal(t, tt.inProgress, o.Status(tt.workflow))
			assert.Equal(t, 1, br.CallCount())
			assert.Equal(t, 0, st.Writes())

			close(br.Gate)
			require.NoError(t, <-done)
			assert.Equal(t, cardsync.StatusSuccess, o.Status(tt.workflow))
			assert.Equal(t, 1, br.CallCount())
			if tt.workflow == cardsync.WorkflowProgress {
				assert.Equal(t, 1, st.Writes())
			}
		})
	}
}

func TestWorkflows_ConcurrentTriggersReachBridgeOnce(t *testing.T) {
	const callers = 16

	for _, tt := range workflowCases {
		t.Run(tt.name, func(t *testing.T) {
			st, br := gatedFixture(callers)
			o, _ := newOrchestrator(testConfig(), st, br)
			ctx := context.Background()

			start := make(chan struct{})
			results := make(chan error, callers)
			for i := 0; i < callers; i++ {
				go func() {
					<-start
					results <- tt.run(ctx, o)
				}()
			}
			close(start)

			<-br.Entered
			for i := 0; i < callers-1; i++ {
				select {
				case err := <-results:
					assert.ErrorIs(t, err, cardsync.ErrInProgress)
				case <-time.After(5 * time.Second):
					t.Fatalf("caller %d did not return; more than one run got past the gate", i)
				}
			}
			assert.Equal(t, 1, br.CallCount())

			close(br.Gate)
			require.NoError(t, <-results)
			assert.Equal(t, 1, br.CallCount())
			assert.Equal(t, cardsync.StatusSuccess, o.Status(tt.workflow))
		})
	}
}

func TestExportCards_SelectsScopeInOrder(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{
		testutil.Entry("1", "alpha", vocab.LearningWord),
		testutil.Entry("2", "beta", vocab.WantToLearnWord),
		testutil.Entry("3", "gamma", vocab.LearningWord),
		testutil.Entry("4", "delta", vocab.WantToLearnWord),
		testutil.Entry("5", "epsilon", vocab.LearningWord),
	}}
	br := &testutil.MockBridge{}
	o, _ := newOrchestrator(testConfig(), st, br)

	res, err := o.ExportCards(context.Background(), vocab.LearningWord)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Selected)
	assert.Equal(t, 3, res.Created)

	require.Len(t, br.Added, 1)
	notes := br.Added[0]
	require.Len(t, notes, 3)
	var fronts []string
	for _, n := range notes {
		fronts = append(fronts, n.Fields.Front)
		assert.Equal(t, anki.DefaultDeckName, n.DeckName)
		assert.False(t, n.Options.AllowDuplicate)
		assert.Equal(t, "deck", n.Options.DuplicateScope)
	}
	assert.Equal(t, []string{"alpha", "gamma", "epsilon"}, fronts)
	assert.Equal(t, cardsync.StatusSuccess, o.Status(cardsync.WorkflowExport))
	assert.Equal(t, 0, st.Writes())
}

func TestExportCards_CountsDuplicates(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{
		testutil.Entry("1", "a", vocab.LearningWord),
		testutil.Entry("2", "b", vocab.LearningWord),
		testutil.Entry("3", "c", vocab.LearningWord),
	}}
	br := &testutil.MockBridge{AddResults: []*int64{testutil.Int64Ptr(123), nil, testutil.Int64Ptr(456)}}
	o, n := newOrchestrator(testConfig(), st, br)

	res, err := o.ExportCards(context.Background(), vocab.LearningWord)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, cardsync.StatusSuccess, o.Status(cardsync.WorkflowExport))

	last, _ := n.Last()
	assert.Equal(t, cardsync.LevelSuccess, last.Level)
	assert.Contains(t, last.Message, "2 created")
	assert.Contains(t, last.Message, "1 duplicates")
}

func TestExportCards_MissingDeck(t *testing.T) {
	cfg := testConfig()
	cfg.DeckName = "  "
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "a", vocab.LearningWord)}}
	br := &testutil.MockBridge{}
	o, n := newOrchestrator(cfg, st, br)

	_, err := o.ExportCards(context.Background(), vocab.LearningWord)
	assert.ErrorIs(t, err, anki.ErrDeckRequired)
	assert.Equal(t, 0, st.Reads)
	assert.Equal(t, 0, br.CallCount())
	assert.Equal(t, cardsync.StatusIdle, o.Status(cardsync.WorkflowExport))

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, cardsync.LevelError, last.Level)
}

func TestExportCards_EmptySelection(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "a", vocab.KnownWord)}}
	br := &testutil.MockBridge{}
	o, n := newOrchestrator(testConfig(), st, br)

	res, err := o.ExportCards(context.Background(), vocab.LearningWord)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Selected)
	assert.Equal(t, 0, br.CallCount())
	assert.Equal(t, cardsync.StatusIdle, o.Status(cardsync.WorkflowExport))

	last, _ := n.Last()
	assert.Equal(t, cardsync.LevelInfo, last.Level)
}

func TestExportCards_Failures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		store  *testutil.MockEntryStore
		bridge *testutil.MockBridge
	}{
		{
			name:   "store read",
			store:  &testutil.MockEntryStore{ReadErr: boom},
			bridge: &testutil.MockBridge{},
		},
		{
			name:   "bridge",
			store:  &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "a", vocab.LearningWord)}},
			bridge: &testutil.MockBridge{AddErr: boom},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, n := newOrchestrator(testConfig(), tt.store, tt.bridge)

			_, err := o.ExportCards(context.Background(), vocab.LearningWord)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, cardsync.StatusFailed, o.Status(cardsync.WorkflowExport))

			last, _ := n.Last()
			assert.Equal(t, cardsync.LevelError, last.Level)
			assert.Contains(t, last.Message, "boom")
		})
	}
}

func TestSyncProgress_PromotesMatchingEntries(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{
		testutil.Entry("1", "apple", vocab.KnownWord),
		testutil.Entry("2", "serendipity", vocab.WantToLearnWord),
		testutil.Entry("3", "banana", vocab.LearningWord),
	}}
	br := &testutil.MockBridge{Cards: []anki.Card{
		testutil.Card(10, `<div class="word"><b>serendipity</b></div><span>/ˌserənˈdɪpəti/</span>`),
	}}
	o, n := newOrchestrator(testConfig(), st, br)

	res, err := o.SyncProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cards)
	assert.Equal(t, 1, res.Promoted)
	assert.Equal(t, []string{"serendipity"}, res.Words)
	assert.Equal(t, []string{`deck:"ContextLingo" is:review prop:ivl>=90`}, br.Queries)

	require.Equal(t, 1, st.Writes())
	written := st.Written[0]
	require.Len(t, written, 3)
	assert.Equal(t, vocab.KnownWord, written[0].Category)
	assert.Equal(t, vocab.KnownWord, written[1].Category)
	assert.Equal(t, vocab.LearningWord, written[2].Category)
	assert.Equal(t, cardsync.StatusSuccess, o.Status(cardsync.WorkflowProgress))

	last, _ := n.Last()
	assert.Equal(t, cardsync.LevelSuccess, last.Level)
}

func TestSyncProgress_NoCards(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "a", vocab.LearningWord)}}
	br := &testutil.MockBridge{}
	o, n := newOrchestrator(testConfig(), st, br)

	res, err := o.SyncProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Promoted)
	assert.Equal(t, 0, st.Writes())
	assert.Equal(t, 0, st.Reads)
	assert.Equal(t, cardsync.StatusSuccess, o.Status(cardsync.WorkflowProgress))

	last, _ := n.Last()
	assert.Equal(t, cardsync.LevelInfo, last.Level)
	assert.Contains(t, last.Message, "nothing to update")
}

func TestSyncProgress_NoMatches(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "walk", vocab.LearningWord)}}
	br := &testutil.MockBridge{Cards: []anki.Card{testutil.Card(1, "<b>run</b>")}}
	o, n := newOrchestrator(testConfig(), st, br)

	res, err := o.SyncProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Promoted)
	assert.Equal(t, 0, st.Writes())

	last, _ := n.Last()
	assert.Equal(t, cardsync.LevelInfo, last.Level)
}

func TestSyncProgress_MatchesConcatenatedText(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{
		testutil.Entry("1", "hotdog", vocab.LearningWord),
		testutil.Entry("2", "look up", vocab.LearningWord),
		testutil.Entry("3", "italic", vocab.LearningWord),
	}}
	br := &testutil.MockBridge{Cards: []anki.Card{
		testutil.Card(10, "<div>hot</div><div>dog</div>"),
		testutil.Card(11, "<style>.w { font-style: italic; }</style>look<br>up"),
	}}
	o, _ := newOrchestrator(testConfig(), st, br)

	res, err := o.SyncProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"hotdog"}, res.Words)

	require.Equal(t, 1, st.Writes())
	written := st.Written[0]
	assert.Equal(t, vocab.KnownWord, written[0].Category)
	assert.Equal(t, vocab.LearningWord, written[1].Category)
	assert.Equal(t, vocab.LearningWord, written[2].Category)
}

func TestSyncProgress_UsesStripper(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "walk", vocab.LearningWord)}}
	br := &testutil.MockBridge{Cards: []anki.Card{testutil.Card(1, "opaque")}}
	o := cardsync.New(testConfig(), st, br, cardsync.WithStripper(func(string) string { return "we walk" }))

	res, err := o.SyncProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Promoted)
}

func TestSyncProgress_WriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	st := &testutil.MockEntryStore{
		Entries:  []vocab.WordEntry{testutil.Entry("1", "walk", vocab.LearningWord)},
		WriteErr: boom,
	}
	br := &testutil.MockBridge{Cards: []anki.Card{testutil.Card(1, "walk")}}
	o, _ := newOrchestrator(testConfig(), st, br)

	_, err := o.SyncProgress(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, cardsync.StatusFailed, o.Status(cardsync.WorkflowProgress))
}

func TestSubscribe(t *testing.T) {
	o, _ := newOrchestrator(testConfig(), &testutil.MockEntryStore{}, &testutil.MockBridge{Version: "6"})

	var got []cardsync.Status
	o.Subscribe(func(w cardsync.Workflow, s cardsync.Status) {
		if w == cardsync.WorkflowConnection {
			got = append(got, s)
		}
	})

	_, err := o.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []cardsync.Status{cardsync.StatusTesting, cardsync.StatusSuccess}, got)
}

func TestSetConfig(t *testing.T) {
	br := &testutil.MockBridge{Version: "6"}
	o, _ := newOrchestrator(testConfig(), &testutil.MockEntryStore{}, br)

	cfg := o.Config()
	cfg.URL = "http://localhost:9999"
	o.SetConfig(cfg)

	_, err := o.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ping http://localhost:9999"}, br.Calls)
}

func TestRunAuto_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.AutoSync = false
	br := &testutil.MockBridge{}
	o, _ := newOrchestrator(cfg, &testutil.MockEntryStore{}, br)

	err := o.RunAuto(context.Background(), time.Minute, vocab.LearningWord)
	assert.ErrorIs(t, err, cardsync.ErrAutoSyncDisabled)
	assert.Equal(t, 0, br.CallCount())
}

func TestRunAuto_InvalidInterval(t *testing.T) {
	o, _ := newOrchestrator(testConfig(), &testutil.MockEntryStore{}, &testutil.MockBridge{})

	assert.Error(t, o.RunAuto(context.Background(), 0, vocab.LearningWord))
	assert.Error(t, o.RunAuto(context.Background(), time.Minute))
}

func TestRunAuto_RunsRoundUntilCancelled(t *testing.T) {
	st := &testutil.MockEntryStore{Entries: []vocab.WordEntry{testutil.Entry("1", "walk", vocab.LearningWord)}}
	br := &testutil.MockBridge{Cards: []anki.Card{testutil.Card(1, "walk")}}
	o, _ := newOrchestrator(testConfig(), st, br)

	progressDone := make(chan struct{}, 1)
	o.Subscribe(func(w cardsync.Workflow, s cardsync.Status) {
		if w == cardsync.WorkflowProgress && s == cardsync.StatusSuccess {
			select {
			case progressDone <- struct{}{}:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- o.RunAuto(ctx, time.Hour, vocab.WantToLearnWord, vocab.LearningWord)
	}()

	select {
	case <-progressDone:
	case <-time.After(5 * time.Second):
		t.Fatal("auto round did not finish")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunAuto did not return after cancel")
	}

	assert.Equal(t, cardsync.StatusSuccess, o.Status(cardsync.WorkflowExport))
	require.Equal(t, 1, st.Writes())
	assert.Equal(t, vocab.KnownWord, st.Written[0][0].Category)
}
