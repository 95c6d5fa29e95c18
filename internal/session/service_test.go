package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/store"
)

// scriptRand replays fixed values, each reduced modulo n.
type scriptRand struct {
	mu   sync.Mutex
	vals []int
}

func (s *scriptRand) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) == 0 {
		panic("scriptRand exhausted")
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v % n
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, r Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return f.err
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(st store.Store, rng game.Rand, targeting string, opts ...Option) *Service {
	rules := config.Default().Game
	rules.ComputerTargeting = targeting
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return New(st, rules, rng, zerolog.Nop(), opts...)
}

// fixedBoard lays out the default fleet at known positions:
// Battleship A1-A5, Destroyer1 C1-C4, Destroyer2 F10-I10.
func fixedBoard(prefix string) game.Board {
	b := game.Board{
		ID:   prefix + "-board",
		Size: game.DefaultBoardSize,
		Grid: game.NewGrid(game.DefaultBoardSize),
		Fleet: game.Fleet{ID: prefix + "-fleet", Ships: []game.Ship{
			{ID: prefix + "-bs", Name: "Battleship", Size: 5, Row: 0, Col: 0, Orientation: game.Horizontal},
			{ID: prefix + "-d1", Name: "Destroyer1", Size: 4, Row: 2, Col: 0, Orientation: game.Horizontal},
			{ID: prefix + "-d2", Name: "Destroyer2", Size: 4, Row: 5, Col: 9, Orientation: game.Vertical},
		}},
	}
	for _, sh := range b.Fleet.Ships {
		for _, p := range sh.Cells() {
			b.Grid[p.Row][p.Col] = game.ShipCell
		}
	}
	return b
}

func fixedMatch(id string) *game.Match {
	return &game.Match{
		ID:        id,
		Human:     game.Player{ID: "h", Name: "User:" + id, Board: fixedBoard("h")},
		Computer:  game.Player{ID: "c", Name: "Computer:" + id, Computer: true, Board: fixedBoard("c")},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func seed(t *testing.T, st store.Store, m *game.Match) {
	t.Helper()
	require.NoError(t, st.Save(context.Background(), m))
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(st, game.NewRand(1), config.TargetUniform)

	ok, err := svc.IsInitiated(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, svc.Initialize(ctx, "u1"))
	ok, err = svc.IsInitiated(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)

	m, err := st.Load(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 13, m.Human.Board.Grid.Count(game.ShipCell))
	require.Equal(t, 13, m.Computer.Board.Grid.Count(game.ShipCell))
	require.Zero(t, m.Human.Score)
	require.Equal(t, testNow, m.CreatedAt)

	err = svc.Initialize(ctx, "u1")
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	require.Equal(t, KindState, Classify(err))
}

func TestInitializePlacementFailureIsInternal(t *testing.T) {
	rules := config.Default().Game
	rules.BoardSize = 3
	svc := New(store.NewMemoryStore(), rules, game.NewRand(1), zerolog.Nop())

	err := svc.Initialize(context.Background(), "x")
	require.ErrorIs(t, err, game.ErrPlacementFailed)
	require.Equal(t, KindInternal, Classify(err))
}

func TestEmptyMatchID(t *testing.T) {
	ctx := context.Background()
	svc := newService(store.NewMemoryStore(), game.NewRand(1), config.TargetUniform)

	require.ErrorIs(t, svc.Initialize(ctx, " "), ErrInvalidMatchID)
	_, err := svc.Shoot(ctx, "", 'A', 1)
	require.ErrorIs(t, err, ErrInvalidMatchID)
	require.Equal(t, KindValidation, Classify(err))
}

func TestShootNotFound(t *testing.T) {
	svc := newService(store.NewMemoryStore(), game.NewRand(1), config.TargetUniform)
	_, err := svc.Shoot(context.Background(), "ghost", 'A', 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, KindNotFound, Classify(err))
}

func TestShootHitAndCounterShot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	// Computer aims at row J, column 1: water.
	svc := newService(st, &scriptRand{vals: []int{9, 0}}, config.TargetUniform)

	rep, err := svc.Shoot(ctx, "m", 'a', 1)
	require.NoError(t, err)
	require.Equal(t, game.OutcomeHit, rep.Player.Outcome)
	require.Equal(t, "Battleship", rep.Player.ShipName)
	require.Equal(t, Coordinate{Row: "A", Column: 1}, rep.PlayerAt)
	require.Equal(t, game.OutcomeMiss, rep.Computer.Outcome)
	require.Equal(t, Coordinate{Row: "J", Column: 1}, rep.ComputerAt)
	require.Equal(t, 15, rep.PlayerScore)
	require.Zero(t, rep.ComputerScore)
	require.False(t, rep.GameOver)

	m, err := st.Load(ctx, "m")
	require.NoError(t, err)
	require.Equal(t, game.Hit, m.Computer.Board.Grid[0][0])
	require.Equal(t, 1, m.Computer.Board.Fleet.Ships[0].Hits)
	require.Equal(t, game.Miss, m.Human.Board.Grid[9][0])
	require.Equal(t, 15, m.Human.Score)
}

func TestShootInvalidPosition(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	svc := newService(st, &scriptRand{}, config.TargetUniform)

	for _, tc := range []struct {
		row rune
		col int
	}{{'K', 1}, {'A', 0}, {'A', 11}, {'?', 3}} {
		t.Run(fmt.Sprintf("%c%d", tc.row, tc.col), func(t *testing.T) {
			_, err := svc.Shoot(ctx, "m", tc.row, tc.col)
			require.ErrorIs(t, err, game.ErrInvalidPosition)
			require.Equal(t, KindValidation, Classify(err))
		})
	}
}

func TestShootRepeatedPlayerCellAbortsWholeShot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	svc := newService(st, &scriptRand{vals: []int{9, 0, 9, 1}}, config.TargetUniform)

	_, err := svc.Shoot(ctx, "m", 'A', 1)
	require.NoError(t, err)
	before, err := st.Load(ctx, "m")
	require.NoError(t, err)

	_, err = svc.Shoot(ctx, "m", 'A', 1)
	require.ErrorIs(t, err, ErrAlreadyShot)
	require.NotErrorIs(t, err, ErrComputerAlreadyShot)
	require.Equal(t, KindState, Classify(err))

	after, err := st.Load(ctx, "m")
	require.NoError(t, err)
	require.Equal(t, before, after)
	// The computer never fired its second shot.
	require.Equal(t, game.Water, after.Human.Board.Grid[9][1])
}

func TestShootRepeatedComputerCellAbortsWholeShot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	svc := newService(st, &scriptRand{vals: []int{9, 0, 9, 0}}, config.TargetUniform)

	_, err := svc.Shoot(ctx, "m", 'J', 10)
	require.NoError(t, err)
	before, err := st.Load(ctx, "m")
	require.NoError(t, err)

	_, err = svc.Shoot(ctx, "m", 'B', 1)
	require.ErrorIs(t, err, ErrAlreadyShot)
	require.ErrorIs(t, err, ErrComputerAlreadyShot)
	require.Equal(t, KindState, Classify(err))
	require.Contains(t, err.Error(), "computer cell already shot at J1")

	after, err := st.Load(ctx, "m")
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, game.Water, after.Computer.Board.Grid[1][0])
}

func TestSinkingHitScoresSixtyFive(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := fixedMatch("m")
	// Destroyer1 (C1-C4) already has three hits.
	for c := 0; c < 3; c++ {
		_, err := game.Fire(&m.Computer.Board, 2, c)
		require.NoError(t, err)
	}
	seed(t, st, m)
	rec := &fakeRecorder{}
	svc := newService(st, &scriptRand{vals: []int{9, 0}}, config.TargetUniform, WithRecorder(rec))

	rep, err := svc.Shoot(ctx, "m", 'C', 4)
	require.NoError(t, err)
	require.Equal(t, game.OutcomeHit, rep.Player.Outcome)
	require.True(t, rep.Player.Sunk)
	require.Equal(t, 65, rep.PlayerScore)
	require.False(t, rep.GameOver)
	require.Empty(t, rec.results)
}

func TestLastSinkingHitEndsMatch(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := fixedMatch("m")
	for _, sh := range m.Computer.Board.Fleet.Ships {
		for _, p := range sh.Cells() {
			if p.Row == 8 && p.Col == 9 {
				continue
			}
			_, err := game.Fire(&m.Computer.Board, p.Row, p.Col)
			require.NoError(t, err)
		}
	}
	m.Human.Score = 100
	seed(t, st, m)
	rec := &fakeRecorder{err: errors.New("db down")}
	svc := newService(st, &scriptRand{vals: []int{9, 0}}, config.TargetUniform, WithRecorder(rec))

	rep, err := svc.Shoot(ctx, "m", 'I', 10)
	require.NoError(t, err)
	require.True(t, rep.GameOver)
	require.Equal(t, game.WinnerHuman, rep.Winner)
	require.Equal(t, 165, rep.PlayerScore)
	require.Equal(t, []Result{{MatchID: "m", Won: true, Score: 165}}, rec.results)

	_, err = svc.Shoot(ctx, "m", 'J', 5)
	require.ErrorIs(t, err, ErrMatchOver)
	require.Equal(t, KindState, Classify(err))
}

func TestUntriedTargetingPlaysToTheEnd(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	svc := newService(store.NewMemoryStore(), game.NewRand(11), config.TargetUntried, WithRecorder(rec))
	require.NoError(t, svc.Initialize(ctx, "p"))

	var last *ShotReport
	for r := 'A'; r <= 'J' && (last == nil || !last.GameOver); r++ {
		for c := 1; c <= 10; c++ {
			rep, err := svc.Shoot(ctx, "p", r, c)
			require.NoError(t, err)
			last = rep
			if rep.GameOver {
				break
			}
		}
	}
	require.NotNil(t, last)
	require.True(t, last.GameOver)
	require.NotEqual(t, game.WinnerNone, last.Winner)
	require.Len(t, rec.results, 1)
	require.Equal(t, last.Winner == game.WinnerHuman, rec.results[0].Won)
}

func TestBoardsMasking(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	svc := newService(st, &scriptRand{vals: []int{0, 0}}, config.TargetUniform)

	// Player hits A1, computer hits A1.
	_, err := svc.Shoot(ctx, "m", 'A', 1)
	require.NoError(t, err)

	hidden, err := svc.Boards(ctx, "m", false)
	require.NoError(t, err)
	require.Equal(t, "X ~ ~ ~ ~ ~ ~ ~ ~ ~", hidden.Player[0])
	require.Equal(t, "X ~ ~ ~ ~ ~ ~ ~ ~ ~", hidden.Computer[0])
	require.Equal(t, "~ ~ ~ ~ ~ ~ ~ ~ ~ ~", hidden.Computer[2])

	shown, err := svc.Boards(ctx, "m", true)
	require.NoError(t, err)
	require.Equal(t, "X S S S S ~ ~ ~ ~ ~", shown.Computer[0])
	require.Equal(t, "S S S S ~ ~ ~ ~ ~ ~", shown.Player[2])
	require.Equal(t, 15, shown.PlayerScore)
	require.Equal(t, 15, shown.ComputerScore)

	_, err = svc.Boards(ctx, "nope", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResetKeepsScoresAndPlacement(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	svc := newService(st, &scriptRand{vals: []int{0, 0, 9, 9}}, config.TargetUniform)

	_, err := svc.Shoot(ctx, "m", 'A', 1)
	require.NoError(t, err)
	_, err = svc.Shoot(ctx, "m", 'E', 5)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "m"))
	m, err := st.Load(ctx, "m")
	require.NoError(t, err)
	fresh := fixedMatch("m")
	require.True(t, fresh.Human.Board.Grid.Equal(m.Human.Board.Grid))
	require.True(t, fresh.Computer.Board.Grid.Equal(m.Computer.Board.Grid))
	require.Equal(t, fresh.Computer.Board.Fleet, m.Computer.Board.Fleet)
	require.Equal(t, 15, m.Human.Score)
	require.Equal(t, 15, m.Computer.Score)

	require.ErrorIs(t, svc.Reset(ctx, "nope"), ErrNotFound)
}

func TestQuit(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(st, game.NewRand(3), config.TargetUniform)
	require.NoError(t, svc.Initialize(ctx, "q"))

	require.NoError(t, svc.Quit(ctx, "q"))
	ok, err := svc.IsInitiated(ctx, "q")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, svc.Quit(ctx, "q"))

	// A quit match can be started again.
	require.NoError(t, svc.Initialize(ctx, "q"))
}

func TestConcurrentShotsAreSerialized(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed(t, st, fixedMatch("m"))
	svc := newService(st, game.NewRand(5), config.TargetUntried)

	// Rows F-J, columns 1-4 are water on the computer board.
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for r := 'F'; r <= 'J'; r++ {
		for c := 1; c <= 4; c++ {
			wg.Add(1)
			go func(r rune, c int) {
				defer wg.Done()
				_, err := svc.Shoot(ctx, "m", r, c)
				errs <- err
			}(r, c)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	m, err := st.Load(ctx, "m")
	require.NoError(t, err)
	require.Equal(t, 20, m.Computer.Board.Grid.Count(game.Miss))
	require.Equal(t, 20, m.Human.Board.Grid.Count(game.Hit)+m.Human.Board.Grid.Count(game.Miss))
	require.Zero(t, svc.locks.size())
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		err  error
		want Kind
	}{
		{fmt.Errorf("wrap: %w", ErrAlreadyShot), KindState},
		{fmt.Errorf("wrap: %w", ErrComputerAlreadyShot), KindState},
		{ErrMatchOver, KindState},
		{store.ErrNotFound, KindNotFound},
		{fmt.Errorf("x: %w", game.ErrMalformedGrid), KindValidation},
		{config.ErrInvalid, KindValidation},
		{game.ErrOrphanCell, KindInternal},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.err))
		})
	}
}
