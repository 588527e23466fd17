package database

// schema is the full DDL, applied idempotently on every start. Booleans
// are stored as integers and timestamps as RFC 3339 text, matching the
// conventions of the production database file.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    email           TEXT UNIQUE NOT NULL,
    password_hash   TEXT NOT NULL,
    role            TEXT NOT NULL CHECK (role IN ('admin','organiser','staff','attendee')),
    name_is_public  INTEGER NOT NULL DEFAULT 0,
    email_is_public INTEGER NOT NULL DEFAULT 0,
    bio             TEXT NOT NULL DEFAULT '',
    avatar_url      TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    token_hash TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expires_at TEXT NOT NULL,
    revoked_at TEXT
);

CREATE TABLE IF NOT EXISTS ticket_types (
    id                 TEXT PRIMARY KEY,
    name               TEXT UNIQUE NOT NULL,
    price              TEXT NOT NULL,
    description        TEXT NOT NULL DEFAULT '',
    available_quantity INTEGER
);

CREATE TABLE IF NOT EXISTS tickets (
    id                 TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    user_name          TEXT NOT NULL,
    conference_name    TEXT NOT NULL,
    ticket_type        TEXT NOT NULL,
    ticket_price       TEXT NOT NULL,
    purchase_date      TEXT NOT NULL,
    qr_code_value      TEXT UNIQUE NOT NULL,
    is_checked_in      INTEGER NOT NULL DEFAULT 0,
    check_in_timestamp TEXT
);

CREATE INDEX IF NOT EXISTS idx_tickets_user_id ON tickets(user_id);

CREATE TABLE IF NOT EXISTS speakers (
    id        TEXT PRIMARY KEY,
    name      TEXT NOT NULL,
    title     TEXT NOT NULL DEFAULT '',
    bio       TEXT NOT NULL DEFAULT '',
    image_url TEXT
);

CREATE TABLE IF NOT EXISTS locations (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schedule_events (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_time  TEXT NOT NULL,
    end_time    TEXT NOT NULL,
    location_id TEXT REFERENCES locations(id) ON DELETE SET NULL,
    created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS event_speakers (
    event_id   TEXT NOT NULL REFERENCES schedule_events(id) ON DELETE CASCADE,
    speaker_id TEXT NOT NULL REFERENCES speakers(id) ON DELETE CASCADE,
    PRIMARY KEY (event_id, speaker_id)
);

CREATE TABLE IF NOT EXISTS exhibitors (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    logo_url     TEXT,
    website_url  TEXT NOT NULL DEFAULT '',
    booth_number TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS polls (
    id         TEXT PRIMARY KEY,
    question   TEXT NOT NULL,
    is_open    INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS poll_options (
    id      TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    text    TEXT NOT NULL,
    votes   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_votes (
    user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    poll_id   TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL,
    voted_at  TEXT NOT NULL,
    PRIMARY KEY (user_id, poll_id)
);

CREATE TABLE IF NOT EXISTS app_settings (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    title                TEXT NOT NULL,
    ticket_sales_enabled INTEGER NOT NULL DEFAULT 1,
    updated_at           TEXT NOT NULL
);

INSERT OR IGNORE INTO app_settings (id, title, ticket_sales_enabled, updated_at)
VALUES (1, 'Unite-CPHVA Annual Professional Conference 2025', 1, strftime('%Y-%m-%dT%H:%M:%SZ','now'));
`
