// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"github.com/sasha-s/go-deadlock"
)

type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex *deadlock.RWMutex
}

func init() {
	deadlock.Opts.Disable = !EnableDebug
}

// SetEnableDebug switches assertion stack dumps and go-deadlock detection.
// Call it during setup, before latches are in use.
func SetEnableDebug(enable bool) {
	EnableDebug = enable
	deadlock.Opts.Disable = !enable
}

// NewRWLatch returns a latch backed by go-deadlock, which reports
// lock-order inversions when debugging is enabled by SetEnableDebug
func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{new(deadlock.RWMutex)}
}

func (l *readerWriterLatch) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatch) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatch) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatch) RUnlock() {
	l.mutex.RUnlock()
}
