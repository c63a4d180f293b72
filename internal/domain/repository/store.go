package repository

import "context"

// Store groups the repositories bound to a single persistence scope.
// A Store obtained from Transactor.InTx writes inside that transaction only.
type Store interface {
	Questionnaires() QuestionnaireRepository
	QuestionSets() QuestionSetRepository
	Associations() AssociationRepository
	Attempts() AttemptRepository
	Programmes() ProgrammeRepository
	Classes() ClassRepository
	People() PersonRepository
}

// Transactor runs fn inside one transaction. A non-nil error from fn rolls the transaction back.
type Transactor interface {
	InTx(ctx context.Context, fn func(store Store) error) error
	// Reader returns a Store on the connection pool for read-only use outside a transaction.
	Reader(ctx context.Context) Store
}
