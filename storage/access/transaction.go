package access

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/storage/page"
	"github.com/ryogrid/SimpleHeapDB/types"
)

/**
 * Transaction states:
 *
 * GROWING -> COMMITTED
 *    |
 *    +-----> ABORTED
 *
 **/

type TransactionState int32

const (
	GROWING TransactionState = iota
	COMMITTED
	ABORTED
)

func (s TransactionState) String() string {
	switch s {
	case GROWING:
		return "GROWING"
	case COMMITTED:
		return "COMMITTED"
	case ABORTED:
		return "ABORTED"
	}
	return "UNKNOWN"
}

/**
 * Transaction tracks information related to a transaction.
 */
type Transaction struct {
	/** The current transaction state. */
	state TransactionState

	/** The GetPageId of this access. */
	txn_id types.TxnID

	// pages dirtied by this transaction, restored from their before-image on abort
	dirty_page_set mapset.Set[page.HeapPageID]

	dbgInfo string
}

func NewTransaction(txn_id types.TxnID) *Transaction {
	return &Transaction{
		GROWING,
		txn_id,
		mapset.NewSet[page.HeapPageID](),
		"",
	}
}

/** @return the id of this transaction */
func (txn *Transaction) GetTransactionId() types.TxnID { return txn.txn_id }

func (txn *Transaction) AddIntoDirtyPageSet(pid page.HeapPageID) {
	txn.dirty_page_set.Add(pid)
}

func (txn *Transaction) GetDirtyPageSet() mapset.Set[page.HeapPageID] {
	return txn.dirty_page_set
}

/** @return the current state of the transaction */
func (txn *Transaction) GetState() TransactionState { return txn.state }

/**
* Set the state of the access.
* @param state new state
 */
func (txn *Transaction) SetState(state TransactionState) {
	if state == ABORTED {
		common.ShPrintf(common.RDB_OP_FUNC_CALL, "Transaction::SetState called. txn.txn_id:%d dbgInfo:%s state:ABORTED\n", txn.txn_id, txn.dbgInfo)
	}
	txn.state = state
}

func (txn *Transaction) GetDebugInfo() string { return txn.dbgInfo }

func (txn *Transaction) SetDebugInfo(dbgInfo string) { txn.dbgInfo = dbgInfo }
