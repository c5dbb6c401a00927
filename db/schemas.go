package db

var schema = `
CREATE TABLE IF NOT EXISTS events (
	event_id BIGSERIAL PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	date VARCHAR(50) NOT NULL,
	capacity INT NOT NULL DEFAULT 0 CHECK (capacity >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tickets (
	ticket_id BIGSERIAL PRIMARY KEY,
	event_id BIGINT NOT NULL REFERENCES events (event_id) ON DELETE CASCADE,
	buyer_name VARCHAR(200) NOT NULL DEFAULT '',
	tier VARCHAR(200) NOT NULL DEFAULT '',
	price BIGINT NOT NULL DEFAULT 0,
	redeemable_issued BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(50) NOT NULL DEFAULT 'issued',
	qr_token VARCHAR(100) NOT NULL,
	issued_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS tickets_qr_token_idx ON tickets (qr_token);
CREATE INDEX IF NOT EXISTS tickets_event_id_idx ON tickets (event_id);

CREATE TABLE IF NOT EXISTS transactions (
	transaction_id BIGSERIAL PRIMARY KEY,
	ticket_id BIGINT NOT NULL REFERENCES tickets (ticket_id) ON DELETE CASCADE,
	event_id BIGINT NOT NULL,
	type VARCHAR(50) NOT NULL,
	amount BIGINT NOT NULL,
	reason VARCHAR(300) NOT NULL DEFAULT '',
	processed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS transactions_ticket_type_idx ON transactions (ticket_id, type);
CREATE INDEX IF NOT EXISTS transactions_event_type_idx ON transactions (event_id, type);

CREATE TABLE IF NOT EXISTS activity_log (
	entry_id UUID PRIMARY KEY,
	event_name VARCHAR(255) NOT NULL,
	ticket_id BIGINT NOT NULL,
	payload JSONB NOT NULL,
	published_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS activity_log_ticket_idx ON activity_log (ticket_id, published_at);
`
