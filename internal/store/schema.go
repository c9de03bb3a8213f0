package store

const VectorDimensions = 1024

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS activity_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    work_hours REAL,
    study_hours REAL,
    sleep_hours REAL,
    mood_score INTEGER,
    goal_completed_percentage REAL NOT NULL DEFAULT 0,
    notes TEXT,
    created_at DATETIME DEFAULT (datetime('now')),
    UNIQUE(user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_activity_user_date ON activity_logs(user_id, date DESC);

CREATE TABLE IF NOT EXISTS daily_insights (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at DATETIME DEFAULT (datetime('now')),
    UNIQUE(user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_daily_insights_user ON daily_insights(user_id, date DESC);

CREATE TABLE IF NOT EXISTS monthly_reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    month TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at DATETIME DEFAULT (datetime('now')),
    UNIQUE(user_id, month)
);

CREATE INDEX IF NOT EXISTS idx_monthly_reviews_user ON monthly_reviews(user_id, month);

CREATE TABLE IF NOT EXISTS memories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    source TEXT NOT NULL,
    source_id INTEGER NOT NULL,
    content TEXT NOT NULL,
    created_at DATETIME DEFAULT (datetime('now')),
    UNIQUE(user_id, source, source_id)
);

CREATE INDEX IF NOT EXISTS idx_memories_user ON memories(user_id);
`

const vecSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS vec_memories USING vec0(
    memory_id INTEGER PRIMARY KEY,
    embedding FLOAT[1024]
);
`
