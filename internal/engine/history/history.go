package history

import (
	"errors"
	"sync"

	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Common errors for history operations.
var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrTransactionOpen = errors.New("a transaction is already open")
	ErrNoTransaction   = errors.New("no open transaction")
	ErrStrokeInFlight  = errors.New("cannot undo or redo while a stroke is recording")
)

// defaultMaxEntries bounds the undo stack when no depth is configured.
const defaultMaxEntries = 1000

// History manages the bounded undo/redo stacks and the single-open-
// transaction gate. All methods are safe for concurrent use, though only
// the stroke-processing path should ever write.
type History struct {
	mu sync.Mutex

	open      *Transaction
	undoStack []*Transaction
	redoStack []*Transaction

	maxEntries int
}

// New creates a history with the given undo depth. Non-positive depths get
// the default of 1000.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Begin opens a new transaction. Only one may be open at a time; beginning
// while another stroke records is a caller bug and returns
// ErrTransactionOpen.
func (h *History) Begin(label string) (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open != nil {
		return nil, ErrTransactionOpen
	}
	h.open = newTransaction(label)
	return h.open, nil
}

// Record appends a snapshot pair to the open transaction. Calling it with
// no open transaction is a programming error and fails fast.
func (h *History) Record(pos tile.Position, before, after *tile.Tile) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open == nil {
		return ErrNoTransaction
	}
	h.open.Record(pos, before, after)
	return nil
}

// Open returns the transaction currently recording, or nil.
func (h *History) Open() *Transaction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// Commit closes the open transaction. A transaction with at least one net
// change is pushed onto the undo stack and clears the redo stack; one with
// zero net changes is discarded without disturbing history. The committed
// transaction is returned, or nil when it was discarded.
func (h *History) Commit() (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open == nil {
		return nil, ErrNoTransaction
	}
	txn := h.open
	h.open = nil

	if txn.NetChanges() == 0 {
		return nil, nil
	}

	h.undoStack = append(h.undoStack, txn)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	return txn, nil
}

// Discard drops the open transaction without touching history. The caller
// is responsible for rolling the store back first if writes were made.
func (h *History) Discard() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = nil
}

// Undo reverse-applies the most recent transaction. Blocked while a stroke
// is recording.
func (h *History) Undo(store TileRestorer) (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open != nil {
		return nil, ErrStrokeInFlight
	}
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}

	txn := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	txn.Undo(store)
	h.redoStack = append(h.redoStack, txn)
	return txn, nil
}

// Redo re-applies the most recently undone transaction.
func (h *History) Redo(store TileRestorer) (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open != nil {
		return nil, ErrStrokeInFlight
	}
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	txn := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	txn.Redo(store)
	h.undoStack = append(h.undoStack, txn)
	return txn, nil
}

// CanUndo reports whether undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undoable transactions.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redoable transactions.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// UndoLabels returns the labels of undoable transactions, oldest first.
// Used by the host's history indicator.
func (h *History) UndoLabels() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	labels := make([]string, len(h.undoStack))
	for i, txn := range h.undoStack {
		labels[i] = txn.Label
	}
	return labels
}

// Clear drops all committed history. The open transaction, if any, is kept.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
