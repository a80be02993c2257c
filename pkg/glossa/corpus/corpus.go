package corpus

// Transaction is one bibliographic record: a normalized title token
// sequence plus an unordered author set. A transaction is identified by
// its position in the corpus and is immutable once loaded.
type Transaction struct {
	TitleTokens   []string
	Authors       []string
	OriginalTitle string
}

// Corpus is an ordered collection of transactions. Order is significant:
// transaction identity is the positional index.
type Corpus struct {
	transactions []Transaction
}

// New creates a corpus from a slice of transactions. The slice is not
// copied; callers must not mutate it afterwards.
func New(transactions []Transaction) *Corpus {
	return &Corpus{transactions: transactions}
}

// Len returns the number of transactions.
func (c *Corpus) Len() int {
	return len(c.transactions)
}

// At returns the transaction at index i.
func (c *Corpus) At(i int) Transaction {
	return c.transactions[i]
}

// All returns the underlying transaction slice in corpus order.
// The result is read-only.
func (c *Corpus) All() []Transaction {
	return c.transactions
}
