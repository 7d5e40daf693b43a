package cheque

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// DB defines the interface for cheque persistence
type DB interface {
	// InsertCheque appends one row; each insert is its own atomic unit
	InsertCheque(rec *Record) error

	// ListCheques returns every stored cheque in storage order
	ListCheques() ([]*Record, error)

	// ColumnNames returns the cheque_details column identifiers in
	// schema order, used to label exports
	ColumnNames() []string

	// Close closes the store
	Close() error
}

// chequeColumns is the cheque_details schema, in insert order.
var chequeColumns = []string{
	"payee_name", "cheque_date", "cheque_number", "account_number",
	"bank_name", "branch", "amount_in_words", "amount_in_numbers",
	"signature_name", "micr_code", "ifsc_code",
}

// No uniqueness constraint on cheque_number: duplicate ingestion of the
// same physical cheque is permitted.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS cheque_details (
	payee_name        TEXT,
	cheque_date       DATE,
	cheque_number     TEXT,
	account_number    TEXT,
	bank_name         TEXT,
	branch            TEXT,
	amount_in_words   TEXT,
	amount_in_numbers TEXT,
	signature_name    TEXT,
	micr_code         TEXT,
	ifsc_code         TEXT
)`

const insertChequeSQL = `
INSERT INTO cheque_details (
	payee_name, cheque_date, cheque_number, account_number,
	bank_name, branch, amount_in_words, amount_in_numbers,
	signature_name, micr_code, ifsc_code
) VALUES ($1, NULLIF($2, '')::date, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const listChequesSQL = `
SELECT
	COALESCE(payee_name, ''),
	COALESCE(to_char(cheque_date, 'YYYY-MM-DD'), ''),
	COALESCE(cheque_number, ''),
	COALESCE(account_number, ''),
	COALESCE(bank_name, ''),
	COALESCE(branch, ''),
	COALESCE(amount_in_words, ''),
	COALESCE(amount_in_numbers, ''),
	COALESCE(signature_name, ''),
	COALESCE(micr_code, ''),
	COALESCE(ifsc_code, '')
FROM cheque_details`

// PostgresDB implements the DB interface against Postgres. Connections
// are opened fresh per operation and closed after it; the store keeps
// only the connection URL.
type PostgresDB struct {
	dsn string
}

// NewPostgresDB validates the connection URL and creates the
// cheque_details table if it does not exist.
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	p := &PostgresDB{dsn: dsn}

	db, err := p.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("creating cheque_details table: %w", err)
	}

	return p, nil
}

func (p *PostgresDB) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", p.dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// InsertCheque appends one row to cheque_details
func (p *PostgresDB) InsertCheque(rec *Record) error {
	db, err := p.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(insertChequeSQL,
		rec.PayeeName, rec.ChequeDate, rec.ChequeNumber, rec.AccountNumber,
		rec.BankName, rec.Branch, rec.AmountInWords, rec.AmountInNumbers,
		rec.SignatureName, rec.MICRCode, rec.IFSCCode,
	); err != nil {
		return fmt.Errorf("inserting cheque: %w", err)
	}
	return nil
}

// ListCheques returns every row as a typed record. There is no ORDER
// BY: rows come back in storage order.
func (p *PostgresDB) ListCheques() ([]*Record, error) {
	db, err := p.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(listChequesSQL)
	if err != nil {
		return nil, fmt.Errorf("fetching cheques: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.PayeeName, &rec.ChequeDate, &rec.ChequeNumber, &rec.AccountNumber,
			&rec.BankName, &rec.Branch, &rec.AmountInWords, &rec.AmountInNumbers,
			&rec.SignatureName, &rec.MICRCode, &rec.IFSCCode,
		); err != nil {
			return nil, fmt.Errorf("scanning cheque row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cheque rows: %w", err)
	}

	return records, nil
}

// ColumnNames returns the cheque_details column identifiers
func (p *PostgresDB) ColumnNames() []string {
	cols := make([]string, len(chequeColumns))
	copy(cols, chequeColumns)
	return cols
}

// Close is a no-op: connections do not outlive individual operations
func (p *PostgresDB) Close() error {
	return nil
}
