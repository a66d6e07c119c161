package analysis

import (
	"errors"
	"strings"

	"github.com/lox/potlimit/poker"
)

// BoardTexture is how coordinated a board is, from dry to very wet.
type BoardTexture int

const (
	Dry BoardTexture = iota
	SemiWet
	Wet
	VeryWet
)

func (bt BoardTexture) String() string {
	switch bt {
	case Dry:
		return "dry"
	case SemiWet:
		return "semi-wet"
	case Wet:
		return "wet"
	case VeryWet:
		return "very wet"
	default:
		return "unknown"
	}
}

// BoardInfo summarises the suit and rank structure of a board.
type BoardInfo struct {
	Texture      BoardTexture
	MaxSuitCount int
	Monotone     bool // every card shares a suit
	Rainbow      bool // no two cards share a suit
	Paired       bool
	Connected    int // longest run of consecutive ranks, ace plays low too
	HighCards    int // cards ten or higher
}

// AnalyzeBoard scores flush, straight and pairing potential. Boards with fewer
// than three cards are dry.
func AnalyzeBoard(board []poker.Card) BoardInfo {
	var info BoardInfo
	if len(board) < 3 {
		return info
	}

	var suits [4]int
	var rankCounts [poker.Ace + 1]int
	for _, c := range board {
		suits[c.Suit()]++
		rankCounts[c.Rank()]++
		if c.Rank() >= poker.Ten {
			info.HighCards++
		}
	}
	distinct := 0
	for _, n := range suits {
		info.MaxSuitCount = max(info.MaxSuitCount, n)
		if n > 0 {
			distinct++
		}
	}
	info.Monotone = distinct == 1
	info.Rainbow = info.MaxSuitCount == 1
	for _, n := range rankCounts {
		if n >= 2 {
			info.Paired = true
		}
	}
	info.Connected = longestRun(rankMask(board))

	wetness := 0
	switch {
	case info.Monotone, info.MaxSuitCount >= 4:
		wetness += 4
	case info.MaxSuitCount == 3:
		wetness += 3
	case info.MaxSuitCount == 2:
		wetness++
	}
	switch {
	case info.Connected >= 4:
		wetness += 4
	case info.Connected == 3:
		wetness += 3
	case info.Connected == 2:
		wetness++
	}
	if info.Paired {
		wetness++
	}
	if info.HighCards >= 3 {
		wetness++
	}

	switch {
	case wetness == 0:
		info.Texture = Dry
	case wetness <= 3:
		info.Texture = SemiWet
	case wetness <= 5:
		info.Texture = Wet
	default:
		info.Texture = VeryWet
	}
	return info
}

// rankMask sets bit r-1 for each rank r present, plus bit 0 for an ace so the
// wheel reads as a run.
func rankMask(cards []poker.Card) uint16 {
	var m uint16
	for _, c := range cards {
		m |= 1 << (c.Rank() - 1)
		if c.Rank() == poker.Ace {
			m |= 1
		}
	}
	return m
}

func longestRun(m uint16) int {
	n := 0
	for m != 0 {
		m &= m << 1
		n++
	}
	return n
}

// DrawType is one kind of drawing hand.
type DrawType int

const (
	FlushDraw DrawType = iota
	NutFlushDraw
	OpenEndedStraightDraw
	Gutshot
	ComboDraw
	BackdoorFlush
	Overcards
)

func (dt DrawType) String() string {
	switch dt {
	case FlushDraw:
		return "flush draw"
	case NutFlushDraw:
		return "nut flush draw"
	case OpenEndedStraightDraw:
		return "open-ended straight draw"
	case Gutshot:
		return "gutshot"
	case ComboDraw:
		return "combo draw"
	case BackdoorFlush:
		return "backdoor flush"
	case Overcards:
		return "overcards"
	default:
		return "unknown"
	}
}

// DrawInfo lists a hand's draws and the unseen cards that complete them.
type DrawInfo struct {
	Draws []DrawType
	Outs  poker.Hand
}

// Has reports whether the hand has the given draw.
func (d DrawInfo) Has(dt DrawType) bool {
	for _, draw := range d.Draws {
		if draw == dt {
			return true
		}
	}
	return false
}

// OutCount returns the number of distinct outs.
func (d DrawInfo) OutCount() int { return d.Outs.CountCards() }

func (d DrawInfo) String() string {
	if len(d.Draws) == 0 {
		return "no draw"
	}
	parts := make([]string, len(d.Draws))
	for i, dt := range d.Draws {
		parts[i] = dt.String()
	}
	return strings.Join(parts, ", ")
}

// ErrDrawStreet is returned by DetectDraws for boards that are not a flop or turn.
var ErrDrawStreet = errors.New("draws need a flop or turn board")

// DetectDraws finds flush and straight draws by trying every unseen card. A card
// is an out when it lifts hero's hand to a flush or straight that the board
// alone does not make.
func DetectDraws(hole, board []poker.Card) (DrawInfo, error) {
	if len(hole) != 2 {
		return DrawInfo{}, &poker.InvalidHandError{Count: len(hole), Reason: "need two hole cards"}
	}
	if len(board) != 3 && len(board) != 4 {
		return DrawInfo{}, ErrDrawStreet
	}
	known := append(append(make([]poker.Card, 0, 7), hole...), board...)
	if poker.NewHand(known...).CountCards() != len(known) {
		return DrawInfo{}, ErrDuplicateCard
	}
	current, err := poker.Evaluate(known)
	if err != nil {
		return DrawInfo{}, err
	}
	used := poker.NewHand(known...)

	var flushOuts, straightOuts poker.Hand
	straightRanks := make(map[poker.Rank]bool)
	for i := range poker.DeckSize {
		c := poker.CardAt(i)
		if used.HasCard(c) {
			continue
		}
		next := poker.MustEvaluate(append(known, c))
		if next.Category() == current.Category() || !boardImproves(next, board, c) {
			continue
		}
		switch next.Category() {
		case poker.Flush, poker.StraightFlush, poker.RoyalFlush:
			if current.Category() < poker.Flush {
				flushOuts.AddCard(c)
			}
		}
		switch next.Category() {
		case poker.Straight, poker.StraightFlush, poker.RoyalFlush:
			if current.Category() < poker.Straight {
				straightOuts.AddCard(c)
				straightRanks[c.Rank()] = true
			}
		}
	}

	var info DrawInfo
	if flushOuts != 0 {
		if holdsNutFlushCard(hole, board, flushOuts) {
			info.Draws = append(info.Draws, NutFlushDraw)
		} else {
			info.Draws = append(info.Draws, FlushDraw)
		}
	}
	// Two completing ranks is eight outs whether open-ended or a double gutshot.
	switch {
	case len(straightRanks) >= 2:
		info.Draws = append(info.Draws, OpenEndedStraightDraw)
	case len(straightRanks) == 1:
		info.Draws = append(info.Draws, Gutshot)
	}
	info.Outs = flushOuts | straightOuts

	if len(board) == 3 && flushOuts == 0 && backdoorFlush(hole, board) {
		info.Draws = append(info.Draws, BackdoorFlush)
	}
	if flushOuts != 0 && straightOuts != 0 {
		info.Draws = append(info.Draws, ComboDraw)
	}
	if current.Category() == poker.HighCard && overcards(hole, board) {
		info.Draws = append(info.Draws, Overcards)
		for _, h := range hole {
			for s := poker.Clubs; s <= poker.Spades; s++ {
				if c := poker.NewCard(h.Rank(), s); !used.HasCard(c) {
					info.Outs.AddCard(c)
				}
			}
		}
	}
	return info, nil
}

// boardImproves rejects cards that give the board itself the same made hand.
func boardImproves(next poker.HandStrength, board []poker.Card, c poker.Card) bool {
	if len(board)+1 < 5 {
		return true
	}
	alone := poker.MustEvaluate(append(append([]poker.Card{}, board...), c))
	return next.Compare(alone) > 0
}

func holdsNutFlushCard(hole, board []poker.Card, outs poker.Hand) bool {
	suit := outs.Cards()[0].Suit()
	present := poker.NewHand(board...)
	for r := poker.Ace; r >= poker.Two; r-- {
		c := poker.NewCard(r, suit)
		if present.HasCard(c) {
			continue
		}
		return c == hole[0] || c == hole[1]
	}
	return false
}

func backdoorFlush(hole, board []poker.Card) bool {
	for s := poker.Clubs; s <= poker.Spades; s++ {
		held, onBoard := 0, 0
		for _, c := range hole {
			if c.Suit() == s {
				held++
			}
		}
		for _, c := range board {
			if c.Suit() == s {
				onBoard++
			}
		}
		if held > 0 && held+onBoard == 3 {
			return true
		}
	}
	return false
}

func overcards(hole, board []poker.Card) bool {
	top := poker.Two
	for _, c := range board {
		top = max(top, c.Rank())
	}
	return hole[0].Rank() > top && hole[1].Rank() > top
}
