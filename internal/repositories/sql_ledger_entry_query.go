package repositories

var queryInsertLedgerEntry = `
	INSERT INTO ledger_entry ("transactionId", "accountName", delta, "appliedAt")
	VALUES ($1, $2, $3, now())
	ON CONFLICT ("transactionId") DO NOTHING`
