package concurrency

import (
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/buffer"
	"github.com/ryogrid/SimpleHeapDB/types"
	"github.com/sasha-s/go-deadlock"
)

/**
 * TransactionManager keeps track of all the transactions running in the system.
 * Commit and abort are delegated to the buffer pool, which writes or restores
 * the pages a transaction dirtied.
 */
type TransactionManager struct {
	next_txn_id types.TxnID
	bpm         *buffer.BufferPoolManager
	/** The global transaction latch is used for checkpointing. */
	global_txn_latch common.ReaderWriterLatch
	mutex            *deadlock.Mutex
	txn_map          map[types.TxnID]*access.Transaction
}

func NewTransactionManager(bpm *buffer.BufferPoolManager) *TransactionManager {
	return &TransactionManager{0, bpm, common.NewRWLatch(), new(deadlock.Mutex), make(map[types.TxnID]*access.Transaction)}
}

// Begin registers txn, or a new transaction when txn is nil
func (transaction_manager *TransactionManager) Begin(txn *access.Transaction) *access.Transaction {
	// Acquire the global transaction latch in shared mode.
	transaction_manager.global_txn_latch.RLock()

	transaction_manager.mutex.Lock()
	defer transaction_manager.mutex.Unlock()
	txn_ret := txn
	if txn_ret == nil {
		transaction_manager.next_txn_id += 1
		txn_ret = access.NewTransaction(transaction_manager.next_txn_id)
	}
	transaction_manager.txn_map[txn_ret.GetTransactionId()] = txn_ret
	common.ShPrintf(common.DEBUG_INFO, "TransactionManager::Begin txn %d\n", txn_ret.GetTransactionId())
	return txn_ret
}

// Commit writes the pages txn dirtied. txn is unregistered even when the write fails.
func (transaction_manager *TransactionManager) Commit(txn *access.Transaction) error {
	// Release the global transaction latch.
	defer transaction_manager.global_txn_latch.RUnlock()
	defer transaction_manager.forget(txn)

	if err := transaction_manager.bpm.TransactionComplete(txn, true); err != nil {
		common.ShPrintf(common.ERROR, "TransactionManager::Commit txn %d: %v\n", txn.GetTransactionId(), err)
		return err
	}
	txn.SetState(access.COMMITTED)
	return nil
}

// Abort restores the before-images of the pages txn dirtied
func (transaction_manager *TransactionManager) Abort(txn *access.Transaction) error {
	defer transaction_manager.global_txn_latch.RUnlock()
	defer transaction_manager.forget(txn)

	txn.SetState(access.ABORTED)
	return transaction_manager.bpm.TransactionComplete(txn, false)
}

func (transaction_manager *TransactionManager) forget(txn *access.Transaction) {
	transaction_manager.mutex.Lock()
	delete(transaction_manager.txn_map, txn.GetTransactionId())
	transaction_manager.mutex.Unlock()
}

// GetTransaction returns nil when txnID is not running
func (transaction_manager *TransactionManager) GetTransaction(txnID types.TxnID) *access.Transaction {
	transaction_manager.mutex.Lock()
	defer transaction_manager.mutex.Unlock()
	return transaction_manager.txn_map[txnID]
}

func (transaction_manager *TransactionManager) NumActiveTransactions() int {
	transaction_manager.mutex.Lock()
	defer transaction_manager.mutex.Unlock()
	return len(transaction_manager.txn_map)
}

// BlockAllTransactions waits for the running transactions and blocks new ones until ResumeTransactions
func (transaction_manager *TransactionManager) BlockAllTransactions() {
	transaction_manager.global_txn_latch.WLock()
}

func (transaction_manager *TransactionManager) ResumeTransactions() {
	transaction_manager.global_txn_latch.WUnlock()
}
