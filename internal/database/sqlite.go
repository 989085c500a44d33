package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared and
	// serializes writers.
	db.SetMaxOpenConns(1)

	sqlite := &SQLiteDB{db: db}

	// Create tables
	if err := sqlite.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return sqlite, nil
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time DATETIME NOT NULL,
		activity_type TEXT,
		duration INTEGER,
		moving_time INTEGER,
		distance REAL,
		num_points INTEGER,
		max_speed REAL,
		avg_speed REAL,
		min_elevation REAL,
		max_elevation REAL,
		elevation_gain REAL,
		elevation_loss REAL,
		avg_grade REAL,
		min_grade REAL,
		max_grade REAL,
		max_heart_rate INTEGER,
		avg_heart_rate INTEGER,
		max_cadence INTEGER,
		avg_cadence INTEGER,
		max_power INTEGER,
		avg_power INTEGER,
		avg_temperature REAL,
		filename TEXT UNIQUE NOT NULL,
		file_type TEXT,
		file_size INTEGER,
		edited BOOLEAN DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_sync DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time);
	CREATE INDEX IF NOT EXISTS idx_activities_activity_type ON activities(activity_type);

	CREATE TABLE IF NOT EXISTS trackpoints (
		activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		timestamp REAL NOT NULL,
		latitude REAL,
		longitude REAL,
		elevation REAL,
		distance REAL,
		speed REAL,
		grade REAL,
		heart_rate INTEGER,
		cadence INTEGER,
		power INTEGER,
		PRIMARY KEY (activity_id, seq)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

const activityColumns = `id, start_time, activity_type, duration, moving_time, distance,
	num_points, max_speed, avg_speed, min_elevation, max_elevation,
	elevation_gain, elevation_loss, avg_grade, min_grade, max_grade,
	max_heart_rate, avg_heart_rate, max_cadence, avg_cadence,
	max_power, avg_power, avg_temperature,
	filename, file_type, file_size, edited, created_at, last_sync`

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(row scanner) (*Activity, error) {
	var a Activity
	err := row.Scan(
		&a.ID, &a.StartTime, &a.ActivityType, &a.Duration, &a.MovingTime, &a.Distance,
		&a.NumPoints, &a.MaxSpeed, &a.AvgSpeed, &a.MinElevation, &a.MaxElevation,
		&a.ElevationGain, &a.ElevationLoss, &a.AvgGrade, &a.MinGrade, &a.MaxGrade,
		&a.MaxHeartRate, &a.AvgHeartRate, &a.MaxCadence, &a.AvgCadence,
		&a.MaxPower, &a.AvgPower, &a.AvgTemperature,
		&a.Filename, &a.FileType, &a.FileSize, &a.Edited, &a.CreatedAt, &a.LastSync,
	)
	if err != nil {
		return nil, err
	}
	a.StartTime = a.StartTime.UTC()
	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]Activity, error) {
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (s *SQLiteDB) GetActivities(limit, offset int) ([]Activity, error) {
	query := `SELECT ` + activityColumns + `
	FROM activities
	ORDER BY start_time DESC
	LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanActivities(rows)
}

func (s *SQLiteDB) ActivityExists(filename string) (bool, error) {
	query := `SELECT COUNT(*) FROM activities WHERE filename = ?`
	var count int
	err := s.db.QueryRow(query, filename).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteDB) getActivityWhere(cond string, arg any) (*Activity, error) {
	row := s.db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE `+cond, arg)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *SQLiteDB) GetActivity(id int64) (*Activity, error) {
	return s.getActivityWhere("id = ?", id)
}

func (s *SQLiteDB) GetActivityByFilename(filename string) (*Activity, error) {
	return s.getActivityWhere("filename = ?", filename)
}

// CreateActivity inserts the activity and sets its ID.
func (s *SQLiteDB) CreateActivity(activity *Activity) error {
	query := `
	INSERT INTO activities (
		start_time, activity_type, duration, moving_time, distance,
		num_points, max_speed, avg_speed, min_elevation, max_elevation,
		elevation_gain, elevation_loss, avg_grade, min_grade, max_grade,
		max_heart_rate, avg_heart_rate, max_cadence, avg_cadence,
		max_power, avg_power, avg_temperature,
		filename, file_type, file_size, edited
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.Exec(query,
		activity.StartTime.UTC(), activity.ActivityType, activity.Duration,
		activity.MovingTime, activity.Distance,
		activity.NumPoints, activity.MaxSpeed, activity.AvgSpeed,
		activity.MinElevation, activity.MaxElevation,
		activity.ElevationGain, activity.ElevationLoss,
		activity.AvgGrade, activity.MinGrade, activity.MaxGrade,
		activity.MaxHeartRate, activity.AvgHeartRate,
		activity.MaxCadence, activity.AvgCadence,
		activity.MaxPower, activity.AvgPower, activity.AvgTemperature,
		activity.Filename, activity.FileType, activity.FileSize, activity.Edited,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity %s: %w", activity.Filename, err)
	}

	activity.ID, err = res.LastInsertId()
	return err
}

func (s *SQLiteDB) UpdateActivity(activity *Activity) error {
	query := `
	UPDATE activities SET
		start_time = ?, activity_type = ?, duration = ?, moving_time = ?, distance = ?,
		num_points = ?, max_speed = ?, avg_speed = ?, min_elevation = ?, max_elevation = ?,
		elevation_gain = ?, elevation_loss = ?, avg_grade = ?, min_grade = ?, max_grade = ?,
		max_heart_rate = ?, avg_heart_rate = ?, max_cadence = ?, avg_cadence = ?,
		max_power = ?, avg_power = ?, avg_temperature = ?,
		filename = ?, file_type = ?, file_size = ?,
		edited = ?, last_sync = CURRENT_TIMESTAMP
	WHERE id = ?`

	res, err := s.db.Exec(query,
		activity.StartTime.UTC(), activity.ActivityType, activity.Duration,
		activity.MovingTime, activity.Distance,
		activity.NumPoints, activity.MaxSpeed, activity.AvgSpeed,
		activity.MinElevation, activity.MaxElevation,
		activity.ElevationGain, activity.ElevationLoss,
		activity.AvgGrade, activity.MinGrade, activity.MaxGrade,
		activity.MaxHeartRate, activity.AvgHeartRate,
		activity.MaxCadence, activity.AvgCadence,
		activity.MaxPower, activity.AvgPower, activity.AvgTemperature,
		activity.Filename, activity.FileType, activity.FileSize,
		activity.Edited, activity.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) DeleteActivity(id int64) error {
	res, err := s.db.Exec(`DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveTrackPoints replaces the stored points of an activity.
func (s *SQLiteDB) SaveTrackPoints(activityID int64, points []TrackPoint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trackpoints WHERE activity_id = ?`, activityID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
	INSERT INTO trackpoints (
		activity_id, seq, timestamp, latitude, longitude, elevation,
		distance, speed, grade, heart_rate, cadence, power
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range points {
		_, err := stmt.Exec(activityID, p.Seq, p.Timestamp, p.Latitude, p.Longitude,
			p.Elevation, p.Distance, p.Speed, p.Grade, p.HeartRate, p.Cadence, p.Power)
		if err != nil {
			return fmt.Errorf("failed to insert track point %d: %w", p.Seq, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) GetTrackPoints(activityID int64) ([]TrackPoint, error) {
	rows, err := s.db.Query(`
	SELECT seq, timestamp, latitude, longitude, elevation,
	       distance, speed, grade, heart_rate, cadence, power
	FROM trackpoints
	WHERE activity_id = ?
	ORDER BY seq`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrackPoint
	for rows.Next() {
		var p TrackPoint
		err := rows.Scan(&p.Seq, &p.Timestamp, &p.Latitude, &p.Longitude, &p.Elevation,
			&p.Distance, &p.Speed, &p.Grade, &p.HeartRate, &p.Cadence, &p.Power)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(`
	SELECT COUNT(*),
	       COALESCE(SUM(CASE WHEN edited THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(distance), 0),
	       COALESCE(SUM(duration), 0),
	       COALESCE(SUM(elevation_gain), 0)
	FROM activities`).Scan(&stats.Total, &stats.Edited, &stats.TotalDistance,
		&stats.TotalDuration, &stats.TotalGain)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

var sortColumns = map[string]string{
	"start_time":     "start_time",
	"distance":       "distance",
	"duration":       "duration",
	"elevation_gain": "elevation_gain",
	"activity_type":  "activity_type",
}

func (s *SQLiteDB) FilterActivities(filters ActivityFilters) ([]Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE 1=1`

	var args []any
	var conditions []string

	// Build WHERE conditions
	if filters.ActivityType != "" {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, filters.ActivityType)
	}

	if filters.DateFrom != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filters.DateFrom.UTC())
	}

	if filters.DateTo != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, filters.DateTo.UTC())
	}

	if filters.MinDistance > 0 {
		conditions = append(conditions, "distance >= ?")
		args = append(args, filters.MinDistance)
	}

	if filters.MaxDistance > 0 {
		conditions = append(conditions, "distance <= ?")
		args = append(args, filters.MaxDistance)
	}

	if filters.MinDuration > 0 {
		conditions = append(conditions, "duration >= ?")
		args = append(args, filters.MinDuration)
	}

	if filters.MaxDuration > 0 {
		conditions = append(conditions, "duration <= ?")
		args = append(args, filters.MaxDuration)
	}

	if filters.Edited != nil {
		conditions = append(conditions, "edited = ?")
		args = append(args, *filters.Edited)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	orderBy, ok := sortColumns[filters.SortBy]
	if !ok {
		orderBy = "start_time"
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderBy, order)

	// Add pagination
	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return scanActivities(rows)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
