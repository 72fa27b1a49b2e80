package core

import (
	"math/rand"
	"time"
)

// SpawnY is the anchor row of freshly spawned pieces.
const SpawnY = Height - 2

// Outcome reports what a single step did.
type Outcome uint8

const (
	OutcomeNone    Outcome = iota // Nothing attempted (no piece, or timer did not fire)
	OutcomeMoved                  // Candidate was valid and committed
	OutcomeBlocked                // Candidate was invalid, piece redrawn in place
	OutcomeLocked                 // Piece could not fall, locked and replaced
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeMoved:
		return "moved"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Config holds the tunables of a simulation.
type Config struct {
	GravityInterval time.Duration // Zero means DefaultGravityInterval
	Colors          ColorRange    // Zero means DefaultColorRange
	Rand            Rand          // Nil means a time-seeded math/rand source
}

// FrameInput carries the edge-triggered signals of one frame.
type FrameInput struct {
	Left   bool
	Right  bool
	Rotate bool
}

// FrameResult records the outcome of each operation run during a frame.
type FrameResult struct {
	Left    Outcome
	Right   Outcome
	Rotate  Outcome
	Gravity Outcome
}

// Simulation owns the board and the single active piece. It is not safe
// for concurrent use; callers serialize all calls.
type Simulation struct {
	board     *Board
	active    ActivePiece
	hasActive bool

	rng     Rand
	colors  ColorRange
	gravity *Timer

	spawned int
	locked  int
	topOut  bool
}

// New creates a simulation with an empty board and no active piece.
func New(cfg Config) *Simulation {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	colors := cfg.Colors
	if colors.Max <= colors.Min {
		colors = DefaultColorRange
	}
	return &Simulation{
		board:   NewBoard(),
		rng:     rng,
		colors:  colors,
		gravity: NewTimer(cfg.GravityInterval),
	}
}

// Board returns the board for read access.
func (s *Simulation) Board() *Board {
	return s.board
}

// Active returns the active piece and whether one has been spawned.
func (s *Simulation) Active() (ActivePiece, bool) {
	return s.active, s.hasActive
}

// GravityInterval returns the time between gravity steps.
func (s *Simulation) GravityInterval() time.Duration {
	return s.gravity.Interval()
}

// Spawned returns how many pieces have been placed on the board.
func (s *Simulation) Spawned() int {
	return s.spawned
}

// Locked returns how many pieces have locked.
func (s *Simulation) Locked() int {
	return s.locked
}

// TopOut reports whether the latest spawn overlapped filled cells.
// Detection only: the rules carry on regardless.
func (s *Simulation) TopOut() bool {
	return s.topOut
}

// Spawn places a random new piece and draws it.
func (s *Simulation) Spawn() ActivePiece {
	p := randomPiece(s.rng, s.colors)
	s.Place(p)
	return p
}

// Place makes p the active piece and draws it. The previous active
// piece, if any, stays on the board as background.
func (s *Simulation) Place(p ActivePiece) {
	s.topOut = s.overlaps(p)
	s.active = p
	s.hasActive = true
	s.spawned++
	p.draw(s.board)
}

// GravityStep moves the active piece down one row. When the row below is
// blocked the piece locks where it was and a new piece spawns.
func (s *Simulation) GravityStep() Outcome {
	if !s.hasActive {
		return OutcomeNone
	}

	s.active.erase(s.board)
	next := s.active
	next.Y--

	if s.fits(next) {
		s.active = next
		s.active.draw(s.board)
		return OutcomeMoved
	}

	s.active.draw(s.board)
	s.locked++
	s.Spawn()
	return OutcomeLocked
}

// Move shifts the active piece horizontally by dx columns.
func (s *Simulation) Move(dx int) Outcome {
	if !s.hasActive {
		return OutcomeNone
	}
	next := s.active
	next.X += dx
	return s.try(next)
}

// Rotate turns the active piece to the next rotation state about its
// unchanged anchor. No wall kicks are attempted.
func (s *Simulation) Rotate() Outcome {
	if !s.hasActive {
		return OutcomeNone
	}
	next := s.active
	next.Rotation = (s.active.Rotation + 1) % Rotations
	return s.try(next)
}

// Update runs one frame: horizontal moves, then rotation, then the
// gravity timer advanced by dt.
func (s *Simulation) Update(in FrameInput, dt time.Duration) FrameResult {
	var res FrameResult
	if in.Left {
		res.Left = s.Move(-1)
	}
	if in.Right {
		res.Right = s.Move(1)
	}
	if in.Rotate {
		res.Rotate = s.Rotate()
	}
	if s.gravity.Advance(dt) {
		res.Gravity = s.GravityStep()
	}
	return res
}

// try erases the active piece, commits next if it fits and redraws
// whichever position won.
func (s *Simulation) try(next ActivePiece) Outcome {
	s.active.erase(s.board)
	outcome := OutcomeBlocked
	if s.fits(next) {
		s.active = next
		outcome = OutcomeMoved
	}
	s.active.draw(s.board)
	return outcome
}

// fits checks each footprint cell against the side walls, the floor and
// filled cells. Cells above the top row are allowed.
func (s *Simulation) fits(p ActivePiece) bool {
	for _, pt := range p.Footprint() {
		if pt.X < 0 || pt.X >= Width || pt.Y < 0 {
			return false
		}
		if s.board.IsFilled(pt.X, pt.Y) {
			return false
		}
	}
	return true
}

func (s *Simulation) overlaps(p ActivePiece) bool {
	for _, pt := range p.Footprint() {
		if s.board.IsFilled(pt.X, pt.Y) {
			return true
		}
	}
	return false
}
