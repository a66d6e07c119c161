// Package analysis provides hand ranges, Monte Carlo equity simulation and a
// cached equity calculator for heads-up hold'em.
package analysis

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/lox/potlimit/poker"
)

// TotalCombos is the number of distinct two card hands in a 52 card deck.
const TotalCombos = poker.DeckSize * (poker.DeckSize - 1) / 2

// Combo is an unordered pair of hole cards, stored with the higher card first.
type Combo struct {
	High poker.Card
	Low  poker.Card
}

// NewCombo builds a combo from two distinct cards in either order.
func NewCombo(a, b poker.Card) (Combo, error) {
	if !a.Valid() || !b.Valid() {
		return Combo{}, fmt.Errorf("combo: invalid card")
	}
	if a == b {
		return Combo{}, fmt.Errorf("combo: duplicate card %s", a)
	}
	if a.Compare(b) < 0 {
		a, b = b, a
	}
	return Combo{High: a, Low: b}, nil
}

// Hand returns the combo as a card bitset.
func (c Combo) Hand() poker.Hand { return poker.NewHand(c.High, c.Low) }

// Cards returns both cards, higher first.
func (c Combo) Cards() []poker.Card { return []poker.Card{c.High, c.Low} }

// Class returns the starting hand class, e.g. "AKs".
func (c Combo) Class() string {
	class, _ := poker.HoleClass(c.High, c.Low)
	return class
}

func (c Combo) String() string { return c.High.String() + c.Low.String() }

// index maps the combo to 0..TotalCombos-1.
func (c Combo) index() int {
	i, j := c.High.Index(), c.Low.Index()
	if i < j {
		i, j = j, i
	}
	return i*(i-1)/2 + j
}

func comboAt(idx int) Combo {
	// Invert idx = i*(i-1)/2 + j with j < i.
	i := 1
	for (i+1)*i/2 <= idx {
		i++
	}
	j := idx - i*(i-1)/2
	c, _ := NewCombo(poker.CardAt(i), poker.CardAt(j))
	return c
}

// RangeKey is a canonical, comparable identity of a range's combo set.
type RangeKey [(TotalCombos + 63) / 64]uint64

// Range is a set of hole card combos.
type Range struct {
	set RangeKey
}

// NewRange creates an empty range.
func NewRange() *Range {
	return &Range{}
}

// FullRange returns a range holding every two card combination.
func FullRange() *Range {
	r := NewRange()
	for i := range TotalCombos {
		r.set[i/64] |= 1 << (i % 64)
	}
	return r
}

// RangeOf builds a range from explicit combos.
func RangeOf(combos ...Combo) *Range {
	r := NewRange()
	for _, c := range combos {
		r.Add(c)
	}
	return r
}

// ParseRange creates a range from standard poker notation. Tokens are comma
// separated and case-insensitive:
//
//	AA, JJ+, 22-77       pocket pairs
//	AKs, AKo, AK         suited, offsuit, both
//	A9s+, KJo+, KJ+      kicker raised to one below the top card
//	A5s-A2s              kicker range with the same top card
//	AhKs                 an explicit combo
func ParseRange(notation string) (*Range, error) {
	r := NewRange()
	tokens := 0
	for part := range strings.SplitSeq(notation, ",") {
		part = strings.Join(strings.Fields(part), "")
		if part == "" {
			continue
		}
		tokens++
		if err := r.addRangePart(part); err != nil {
			return nil, err
		}
	}
	if tokens == 0 {
		return nil, &poker.ParseError{Input: notation, Reason: "empty range"}
	}
	return r, nil
}

// MustParseRange parses notation and panics on error.
func MustParseRange(notation string) *Range {
	r, err := ParseRange(notation)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Range) addRangePart(part string) error {
	if len(part) == 4 && !strings.ContainsAny(part, "+-") {
		if cards, err := poker.ParseCards(part); err == nil {
			c, err := NewCombo(cards[0], cards[1])
			if err != nil {
				return &poker.ParseError{Input: part, Reason: err.Error()}
			}
			r.Add(c)
			return nil
		}
	}
	switch {
	case strings.HasSuffix(part, "+"):
		return r.addPlusRange(part)
	case strings.Contains(part, "-"):
		return r.addDashRange(part)
	default:
		h, err := parseClass(part)
		if err != nil {
			return err
		}
		r.addClass(h.high, h.low, h.suited, h.offsuit)
		return nil
	}
}

// class is a parsed starting hand such as "AKs". For pairs suited and offsuit are both set.
type class struct {
	high, low       poker.Rank
	suited, offsuit bool
}

func (h class) pair() bool { return h.high == h.low }

func parseClass(s string) (class, error) {
	if len(s) < 2 || len(s) > 3 {
		return class{}, &poker.ParseError{Input: s, Reason: "expected two ranks and an optional s/o"}
	}
	r1, ok1 := poker.ParseRank(s[0])
	r2, ok2 := poker.ParseRank(s[1])
	if !ok1 || !ok2 {
		return class{}, &poker.ParseError{Input: s, Reason: "invalid rank"}
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	h := class{high: r1, low: r2, suited: true, offsuit: true}
	if len(s) == 2 {
		return h, nil
	}
	if h.pair() {
		return class{}, &poker.ParseError{Input: s, Reason: "pocket pairs cannot be suited or offsuit"}
	}
	switch s[2] {
	case 's', 'S':
		h.offsuit = false
	case 'o', 'O':
		h.suited = false
	default:
		return class{}, &poker.ParseError{Input: s, Reason: "invalid modifier " + string(s[2])}
	}
	return h, nil
}

// retoken reports a class error against the whole token it came from.
func retoken(part string, err error) error {
	var perr *poker.ParseError
	if errors.As(err, &perr) {
		return &poker.ParseError{Input: part, Reason: perr.Reason}
	}
	return err
}

// addPlusRange handles "TT+" (pairs TT and higher) and "KTs+" (kickers up to one below the top card).
func (r *Range) addPlusRange(part string) error {
	h, err := parseClass(strings.TrimSuffix(part, "+"))
	if err != nil {
		return retoken(part, err)
	}
	if h.pair() {
		for rank := h.high; rank <= poker.Ace; rank++ {
			r.addClass(rank, rank, true, true)
		}
		return nil
	}
	for kicker := h.low; kicker < h.high; kicker++ {
		r.addClass(h.high, kicker, h.suited, h.offsuit)
	}
	return nil
}

// addDashRange handles "22-66" and "A5s-A2s".
func (r *Range) addDashRange(part string) error {
	start, end, ok := strings.Cut(part, "-")
	if !ok || strings.Contains(end, "-") {
		return &poker.ParseError{Input: part, Reason: "invalid dash range"}
	}
	from, err := parseClass(start)
	if err != nil {
		return retoken(part, err)
	}
	to, err := parseClass(end)
	if err != nil {
		return retoken(part, err)
	}

	switch {
	case from.pair() && to.pair():
		for rank := min(from.high, to.high); rank <= max(from.high, to.high); rank++ {
			r.addClass(rank, rank, true, true)
		}
	case !from.pair() && !to.pair() && from.high == to.high &&
		from.suited == to.suited && from.offsuit == to.offsuit:
		for kicker := min(from.low, to.low); kicker <= max(from.low, to.low); kicker++ {
			r.addClass(from.high, kicker, from.suited, from.offsuit)
		}
	default:
		return &poker.ParseError{Input: part, Reason: "range ends must share shape and top card"}
	}
	return nil
}

// addClass adds every combo of a starting hand class: 6 for pairs, 4 suited, 12 offsuit.
func (r *Range) addClass(high, low poker.Rank, suited, offsuit bool) {
	for s1 := poker.Clubs; s1 <= poker.Spades; s1++ {
		for s2 := poker.Clubs; s2 <= poker.Spades; s2++ {
			if high == low && s2 <= s1 {
				continue
			}
			if high != low && (s1 == s2 && !suited || s1 != s2 && !offsuit) {
				continue
			}
			c, _ := NewCombo(poker.NewCard(high, s1), poker.NewCard(low, s2))
			r.Add(c)
		}
	}
}

// Add inserts a combo into the range.
func (r *Range) Add(c Combo) {
	i := c.index()
	r.set[i/64] |= 1 << (i % 64)
}

// Contains reports whether the combo is in the range.
func (r *Range) Contains(c Combo) bool {
	i := c.index()
	return r.set[i/64]&(1<<(i%64)) != 0
}

// ContainsCards reports whether the two hole cards are in the range.
func (r *Range) ContainsCards(c1, c2 poker.Card) bool {
	c, err := NewCombo(c1, c2)
	return err == nil && r.Contains(c)
}

// Len returns the number of combos in the range.
func (r *Range) Len() int {
	n := 0
	for _, w := range r.set {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the range has no combos.
func (r *Range) IsEmpty() bool { return r.Len() == 0 }

// Key returns the canonical identity of the range.
func (r *Range) Key() RangeKey { return r.set }

// Combos returns every combo in a stable order.
func (r *Range) Combos() []Combo {
	combos := make([]Combo, 0, r.Len())
	for w, word := range r.set {
		for ; word != 0; word &= word - 1 {
			combos = append(combos, comboAt(w*64+bits.TrailingZeros64(word)))
		}
	}
	return combos
}

// RemoveBlockers returns a new range without combos that use any dead card.
// The result may be empty.
func (r *Range) RemoveBlockers(dead ...poker.Card) *Range {
	blocked := poker.NewHand(dead...)
	out := NewRange()
	for _, c := range r.Combos() {
		if !c.Hand().Overlaps(blocked) {
			out.Add(c)
		}
	}
	return out
}

// ClassCount is the number of combos of one starting hand class present in a range.
type ClassCount struct {
	Class  string
	Combos int
}

// Classes groups the range by starting hand class, strongest top card first.
func (r *Range) Classes() []ClassCount {
	counts := make(map[string]int)
	for _, c := range r.Combos() {
		counts[c.Class()]++
	}
	out := make([]ClassCount, 0, len(counts))
	for class, n := range counts {
		out = append(out, ClassCount{Class: class, Combos: n})
	}
	slices.SortFunc(out, func(a, b ClassCount) int {
		return compareClass(a.Class, b.Class)
	})
	return out
}

func compareClass(a, b string) int {
	ra1, _ := poker.ParseRank(a[0])
	rb1, _ := poker.ParseRank(b[0])
	if ra1 != rb1 {
		return int(rb1) - int(ra1)
	}
	ra2, _ := poker.ParseRank(a[1])
	rb2, _ := poker.ParseRank(b[1])
	if ra2 != rb2 {
		return int(rb2) - int(ra2)
	}
	return strings.Compare(a, b)
}

func (r *Range) String() string {
	classes := r.Classes()
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = c.Class
	}
	return strings.Join(parts, ",")
}
