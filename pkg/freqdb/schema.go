package freqdb

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per completed counting run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP,
    shard_count INTEGER NOT NULL,
    worker_count INTEGER NOT NULL,
    record_count INTEGER NOT NULL DEFAULT 0
);

-- Final surface-form table of a run
CREATE TABLE IF NOT EXISTS verb_frequencies (
    run_id INTEGER NOT NULL,
    surface TEXT NOT NULL,
    pos TEXT NOT NULL,
    dictionary_form TEXT NOT NULL,
    frequency INTEGER NOT NULL,
    PRIMARY KEY (run_id, surface),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_verb_freq_desc ON verb_frequencies(run_id, frequency DESC);

-- Final inflection-tag table of a run
CREATE TABLE IF NOT EXISTS inflection_frequencies (
    run_id INTEGER NOT NULL,
    tag TEXT NOT NULL,
    frequency INTEGER NOT NULL,
    PRIMARY KEY (run_id, tag),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);
`
