// internal/session/service.go
//
// Game session service: one human vs. computer match per match id.
// Responsibilities:
//   - Initialize, shoot, reset, quit, and render matches.
//   - Serialize operations on the same match (keyed mutex).
//   - Load a match, mutate a copy, and persist it only when the whole
//     operation succeeded.
//   - Record a result when a shot ends the match.
//
// State machine per match:
//
//	Uninitialized -> Active -> (Active | Over)
//	Reset: Active -> Active, Quit: any -> Uninitialized

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/store"
)

// Result is the outcome of a finished match, keyed by the match id.
type Result struct {
	MatchID       string `json:"matchId"`
	Won           bool   `json:"won"`
	Score         int    `json:"score"`
	ComputerScore int    `json:"computerScore"`
}

// Recorder receives finished matches.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Coordinate is a board position in player terms: row letter and 1-based column.
type Coordinate struct {
	Row    string `json:"row"`
	Column int    `json:"column"`
}

func coordinate(r, c int) Coordinate {
	letter, col := game.FormatPosition(r, c)
	return Coordinate{Row: string(letter), Column: col}
}

// ShotReport is what one Shoot call returns: the human shot, the computer's
// counter-shot, and the scores after both.
type ShotReport struct {
	Player        game.Shot  `json:"player"`
	PlayerAt      Coordinate `json:"playerAt"`
	Computer      game.Shot  `json:"computer"`
	ComputerAt    Coordinate `json:"computerAt"`
	GameOver      bool       `json:"gameOver"`
	Winner        string     `json:"winner,omitempty"`
	PlayerScore   int        `json:"playerScore"`
	ComputerScore int        `json:"computerScore"`
}

// BoardView holds both rendered grids.
type BoardView struct {
	Size          int      `json:"size"`
	Player        []string `json:"player"`
	Computer      []string `json:"computer"`
	PlayerScore   int      `json:"playerScore"`
	ComputerScore int      `json:"computerScore"`
	GameOver      bool     `json:"gameOver"`
	Winner        string   `json:"winner,omitempty"`
}

// Service runs matches against a Store.
type Service struct {
	store    store.Store
	rules    config.Game
	rng      game.Rand
	log      zerolog.Logger
	recorder Recorder
	now      func() time.Time
	locks    *keyedMutex
}

// Option customizes a Service.
type Option func(*Service)

// WithRecorder sets where finished matches are reported.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service. rules must already be validated.
func New(st store.Store, rules config.Game, rng game.Rand, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store: st,
		rules: rules,
		rng:   rng,
		log:   logger.With().Str("component", "session").Logger(),
		now:   time.Now,
		locks: newKeyedMutex(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Rules returns the rules new matches are created with.
func (s *Service) Rules() config.Game { return s.rules }

// fail wraps err with the operation and match id and logs it.
func (s *Service) fail(op, id string, err error) error {
	err = fmt.Errorf("session: %s %s: %w", op, id, err)
	ev := s.log.Debug()
	if Classify(err) == KindInternal {
		ev = s.log.Error()
	}
	ev.Str("op", op).Str("match", id).Err(err).Msg("operation failed")
	return err
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidMatchID
	}
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*game.Match, error) {
	m, err := s.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

// Initialize creates both players and places both fleets.
func (s *Service) Initialize(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return s.fail("initialize", id, err)
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return s.fail("initialize", id, err)
	}
	if exists {
		return s.fail("initialize", id, ErrAlreadyInitialized)
	}

	m, err := game.NewMatch(id, s.rules.BoardSize, s.rules.Fleet, s.rng, s.now())
	if err != nil {
		return s.fail("initialize", id, err)
	}
	if err := s.store.Save(ctx, m); err != nil {
		return s.fail("initialize", id, err)
	}
	s.log.Info().Str("match", id).Msg("match initialized")
	return nil
}

// IsInitiated reports whether a match exists for id.
func (s *Service) IsInitiated(ctx context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, s.fail("status", id, err)
	}
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return false, s.fail("status", id, err)
	}
	return ok, nil
}

// Shoot fires the human shot at (row, col) on the computer's board, then one
// computer shot on the human's board. If either lands on a cell that was
// already shot the whole call fails with ErrAlreadyShot and nothing is saved.
// When the computer's shot caused it the error also matches ErrComputerAlreadyShot.
func (s *Service) Shoot(ctx context.Context, id string, row rune, col int) (*ShotReport, error) {
	if err := checkID(id); err != nil {
		return nil, s.fail("shoot", id, err)
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail("shoot", id, err)
	}
	if m.Over() {
		return nil, s.fail("shoot", id, ErrMatchOver)
	}

	size := m.Computer.Board.Size
	r, c, err := game.ParsePosition(row, col, size)
	if err != nil {
		return nil, s.fail("shoot", id, err)
	}

	work := m.Clone()
	player, err := game.Fire(&work.Computer.Board, r, c)
	if err != nil {
		return nil, s.fail("shoot", id, err)
	}
	if player.Outcome == game.OutcomeAlreadyShot {
		at := coordinate(r, c)
		return nil, s.fail("shoot", id, fmt.Errorf("%w: player at %s%d", ErrAlreadyShot, at.Row, at.Column))
	}
	work.Human.Score += s.rules.Scoring.Award(player)

	cr, cc, err := s.computerTarget(work.Human.Board)
	if err != nil {
		return nil, s.fail("shoot", id, err)
	}
	computer, err := game.Fire(&work.Human.Board, cr, cc)
	if err != nil {
		return nil, s.fail("shoot", id, err)
	}
	if computer.Outcome == game.OutcomeAlreadyShot {
		at := coordinate(cr, cc)
		return nil, s.fail("shoot", id, fmt.Errorf("%w at %s%d", ErrComputerAlreadyShot, at.Row, at.Column))
	}
	work.Computer.Score += s.rules.Scoring.Award(computer)
	work.UpdatedAt = s.now()

	if err := s.store.Save(ctx, work); err != nil {
		return nil, s.fail("shoot", id, err)
	}

	report := &ShotReport{
		Player:        player,
		PlayerAt:      coordinate(r, c),
		Computer:      computer,
		ComputerAt:    coordinate(cr, cc),
		GameOver:      work.Over(),
		Winner:        work.Winner(),
		PlayerScore:   work.Human.Score,
		ComputerScore: work.Computer.Score,
	}
	if report.GameOver {
		s.record(ctx, work)
	}
	return report, nil
}

// computerTarget picks the computer's next shot on b.
func (s *Service) computerTarget(b game.Board) (int, int, error) {
	size := b.Size
	if s.rules.ComputerTargeting != config.TargetUntried {
		letter := rune('A' + s.rng.Intn(size))
		return game.ParsePosition(letter, 1+s.rng.Intn(size), size)
	}

	open := make([]game.Point, 0, size*size)
	for r := range b.Grid {
		for c, v := range b.Grid[r] {
			if !v.Shot() {
				open = append(open, game.Point{Row: r, Col: c})
			}
		}
	}
	if len(open) == 0 {
		return 0, 0, errors.New("no untried cells left")
	}
	p := open[s.rng.Intn(len(open))]
	return p.Row, p.Col, nil
}

func (s *Service) record(ctx context.Context, m *game.Match) {
	s.log.Info().
		Str("match", m.ID).
		Str("winner", m.Winner()).
		Int("player_score", m.Human.Score).
		Int("computer_score", m.Computer.Score).
		Msg("match over")
	if s.recorder == nil {
		return
	}
	res := Result{
		MatchID:       m.ID,
		Won:           m.Winner() == game.WinnerHuman,
		Score:         m.Human.Score,
		ComputerScore: m.Computer.Score,
	}
	if err := s.recorder.Record(ctx, res); err != nil {
		s.log.Warn().Err(err).Str("match", m.ID).Msg("record result failed")
	}
}

// Boards renders both grids. Unhit ships are masked unless reveal is set.
func (s *Service) Boards(ctx context.Context, id string, reveal bool) (*BoardView, error) {
	if err := checkID(id); err != nil {
		return nil, s.fail("boards", id, err)
	}
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, s.fail("boards", id, err)
	}
	return &BoardView{
		Size:          m.Human.Board.Size,
		Player:        game.Render(m.Human.Board.Grid, reveal),
		Computer:      game.Render(m.Computer.Board.Grid, reveal),
		PlayerScore:   m.Human.Score,
		ComputerScore: m.Computer.Score,
		GameOver:      m.Over(),
		Winner:        m.Winner(),
	}, nil
}

// Reset restores both boards to their initial placement. Scores are kept.
func (s *Service) Reset(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return s.fail("reset", id, err)
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	m, err := s.load(ctx, id)
	if err != nil {
		return s.fail("reset", id, err)
	}
	m.Reset()
	m.UpdatedAt = s.now()
	if err := s.store.Save(ctx, m); err != nil {
		return s.fail("reset", id, err)
	}
	s.log.Info().Str("match", id).Msg("match reset")
	return nil
}

// Quit deletes the match and everything it owns. Quitting a match that does
// not exist is not an error.
func (s *Service) Quit(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return s.fail("quit", id, err)
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail("quit", id, err)
	}
	s.log.Info().Str("match", id).Msg("match quit")
	return nil
}
