package concurrency

import (
	"github.com/ryogrid/SimpleHeapDB/storage/buffer"
)

/**
 * CheckpointManager creates consistent checkpoints by blocking all other transactions temporarily.
 */
type CheckpointManager struct {
	transaction_manager *TransactionManager
	buffer_pool_manager *buffer.BufferPoolManager
}

func NewCheckpointManager(
	transaction_manager *TransactionManager,
	buffer_pool_manager *buffer.BufferPoolManager) *CheckpointManager {
	return &CheckpointManager{transaction_manager, buffer_pool_manager}
}

// BeginCheckpoint blocks new transactions once the running ones finish and
// persists every page of the buffer pool. Transactions resume at EndCheckpoint.
func (checkpoint_manager *CheckpointManager) BeginCheckpoint() error {
	checkpoint_manager.transaction_manager.BlockAllTransactions()
	return checkpoint_manager.buffer_pool_manager.FlushAllPages()
}

func (checkpoint_manager *CheckpointManager) EndCheckpoint() {
	// Allow transactions to resume, completing the checkpoint.
	checkpoint_manager.transaction_manager.ResumeTransactions()
}
