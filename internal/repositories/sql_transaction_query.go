package repositories

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/ledgerhub/go-bank-ledger/internal/models"
)

var (
	queryInsertTransaction = `
	INSERT INTO "transaction" (id, "accountName", "transactionType", amount, status, "createdAt", "updatedAt")
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO NOTHING`

	queryGetTransactionByID = `
	SELECT
		id,
		"accountName",
		"transactionType",
		amount,
		status,
		"createdAt",
		"updatedAt"
	FROM "transaction"
	WHERE id = $1`

	queryMarkTransactionPublished = `
	UPDATE "transaction"
	SET
		status = $1,
		"updatedAt" = now()
	WHERE id = $2`
)

func buildFetchPendingTransactionsQuery(limit int) (sql string, args []interface{}, err error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	return psql.
		Select(
			"id",
			`"accountName"`,
			`"transactionType"`,
			"amount",
			"status",
			`"createdAt"`,
			`"updatedAt"`,
		).
		From(`"transaction"`).
		Where(sq.Eq{"status": models.TransactionStatusPending}).
		OrderBy(`"createdAt"`).
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
}
