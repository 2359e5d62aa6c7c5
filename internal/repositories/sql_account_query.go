package repositories

var (
	queryGetAccountByName = `
	SELECT
		id,
		"accountName",
		balance,
		"createdAt",
		"updatedAt"
	FROM account
	WHERE "accountName" = $1`

	queryUpsertAccountBalance = `
	INSERT INTO account (id, "accountName", balance, "createdAt", "updatedAt")
	VALUES ($1, $2, $3, now(), now())
	ON CONFLICT ("accountName") DO UPDATE
	SET
		balance = account.balance + EXCLUDED.balance,
		"updatedAt" = now()`
)
