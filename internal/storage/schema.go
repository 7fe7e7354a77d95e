package storage

// Schema for the MySQL-backed store. Question lists and schedule maps are
// stored as JSON documents; the study flow always reads and writes them
// whole, so there is nothing to gain from normalizing them into rows.
const Schema = `
CREATE TABLE IF NOT EXISTS decks (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    questions JSON NOT NULL,
    created_at DATETIME NOT NULL,
    last_studied DATETIME NULL
);

CREATE TABLE IF NOT EXISTS deck_progress (
    deck_id VARCHAR(64) PRIMARY KEY,
    total_attempts INT NOT NULL DEFAULT 0,
    correct_answers INT NOT NULL DEFAULT 0,
    accuracy DOUBLE NOT NULL DEFAULT 0,
    last_session JSON NULL,
    srs_by_question_id JSON NULL
);

CREATE TABLE IF NOT EXISTS resume_pointers (
    deck_id VARCHAR(64) PRIMARY KEY,
    position INT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    name VARCHAR(64) PRIMARY KEY,
    value INT NOT NULL
);
`
