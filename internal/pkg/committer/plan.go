// Package committer applies collected Spanner mutations atomically.
//
// Repositories never write. They return *spanner.Mutation values which a
// usecase collects into a CommitPlan, together with outbox events, and the
// Committer applies the plan in a single transaction:
//
//	plan := committer.NewPlan()
//	plan.Add(productRepo.UpdateMut(product))
//	plan.AddMultiple(outboxRepo.InsertMuts(events))
//	return c.Apply(ctx, plan)
//
// Usecases that must read before they write (stock reservations, login
// throttling) use RunInTx. The closure receives a fresh plan on every
// attempt, reads through the transaction, and the plan is buffered into
// the same transaction when the closure returns nil.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// TxFunc is the body of a read-write transaction.
type TxFunc func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *CommitPlan) error

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// RunInTx runs fn inside a read-write transaction and buffers the plan it
// built. Aborted transactions are retried by the client, so fn must derive
// all of its state from reads made through txn.
//
// An error returned by fn rolls the transaction back and is returned as is,
// so callers can match domain sentinels with errors.Is.
func (c *Committer) RunInTx(ctx context.Context, fn TxFunc) error {
	var fnErr error
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		fnErr = nil
		plan := NewPlan()
		if err := fn(ctx, txn, plan); err != nil {
			fnErr = err
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
