package object

import (
	"math/rand"
	"time"

	"github.com/navionguy/nextbasic/token"
)

// ForBlock is the bookkeeping for an active FOR loop
type ForBlock struct {
	End  float64 // loop ends once the variable passes this
	Step float64 // amount added by each NEXT
	Body int     // index of the first statement inside the loop
}

// Environment holds the machine state for one run of a program
type Environment struct {
	store     map[string]Object    // variables, keyed by normalized name
	retStack  []int                // return points pushed by GOSUB
	forLoops  map[string]*ForBlock // active loops, keyed by normalized variable name
	rnd       *rand.Rand           // random number generator
	seed      int64
	seedFixed bool
}

// NewEnvironment creates a place to store variables
// a seed of zero means seed from the clock
func NewEnvironment(seed int64) *Environment {
	e := &Environment{seed: seed, seedFixed: seed != 0}
	e.Reset()
	return e
}

// Reset throws away all the state from a previous run
func (e *Environment) Reset() {
	e.store = make(map[string]Object)
	e.retStack = nil
	e.forLoops = make(map[string]*ForBlock)

	seed := e.seed
	if !e.seedFixed {
		seed = time.Now().UnixNano()
	}
	e.rnd = rand.New(rand.NewSource(seed))
}

// Get attempts to retrieve a variable, names are case-insensitive
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[token.Normalize(name)]
	return obj, ok
}

// Set stores a variable
func (e *Environment) Set(name string, val Object) Object {
	e.store[token.Normalize(name)] = val
	return val
}

// PushReturn saves the program counter GOSUB will come back to
func (e *Environment) PushReturn(index int) {
	e.retStack = append(e.retStack, index)
}

// PopReturn pulls the most recent return point, false if there isn't one
func (e *Environment) PopReturn() (int, bool) {
	if len(e.retStack) == 0 {
		return 0, false
	}
	rp := e.retStack[len(e.retStack)-1]
	e.retStack = e.retStack[:len(e.retStack)-1]
	return rp, true
}

// SetForLoop registers a loop, replacing any loop on the same variable
func (e *Environment) SetForLoop(name string, blk *ForBlock) {
	e.forLoops[token.Normalize(name)] = blk
}

// GetForLoop finds the active loop for a variable
func (e *Environment) GetForLoop(name string) (*ForBlock, bool) {
	blk, ok := e.forLoops[token.Normalize(name)]
	return blk, ok
}

// ClearForLoop discards a finished loop
func (e *Environment) ClearForLoop(name string) {
	delete(e.forLoops, token.Normalize(name))
}

// Random returns a random number in [0, 1)
func (e *Environment) Random() float64 {
	return e.rnd.Float64()
}
