package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"grc/internal/domain/auth"
	"grc/internal/platform/config"
)

type seedControl struct {
	code         string
	title        string
	description  string
	intervalDays int
}

type seedStandard struct {
	name     string
	version  string
	controls []seedControl
}

var standardsLibrary = []seedStandard{
	{
		name:    "ISO 27001",
		version: "2022",
		controls: []seedControl{
			{"A.5.1", "Policies for information security", "Information security policy defined, approved and reviewed.", 365},
			{"A.5.15", "Access control", "Rules to control physical and logical access to information.", 90},
			{"A.8.8", "Management of technical vulnerabilities", "Vulnerabilities identified, assessed and remediated.", 30},
			{"A.8.13", "Information backup", "Backups maintained and tested per policy.", 90},
			{"A.6.3", "Information security awareness training", "Personnel receive awareness education and training.", 180},
		},
	},
	{
		name:    "GDPR",
		version: "2016/679",
		controls: []seedControl{
			{"Art.30", "Records of processing activities", "Maintain a record of processing activities under responsibility.", 180},
			{"Art.32", "Security of processing", "Technical and organisational measures appropriate to risk.", 90},
			{"Art.33", "Breach notification", "Notify supervisory authority within 72 hours of breach awareness.", 365},
			{"Art.35", "Data protection impact assessment", "DPIA performed for high-risk processing.", 180},
		},
	},
	{
		name:    "SOC 2",
		version: "2017",
		controls: []seedControl{
			{"CC6.1", "Logical access security", "Logical access security software and architectures in place.", 90},
			{"CC7.2", "System monitoring", "Anomalies monitored and evaluated for security events.", 30},
			{"CC8.1", "Change management", "Changes authorized, designed, tested and approved.", 90},
		},
	},
}

// Seed installs the standards/controls library and the bootstrap admin
// user. It is idempotent; reruns only fill gaps.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	for _, standard := range standardsLibrary {
		standardID, err := ensureStandard(ctx, pool, standard.name, standard.version)
		if err != nil {
			return err
		}
		for _, control := range standard.controls {
			if err := ensureLibraryControl(ctx, pool, standardID, control); err != nil {
				return err
			}
		}
	}

	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureStandard(ctx context.Context, pool *pgxpool.Pool, name, version string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `
    INSERT INTO standards (name, version)
    VALUES ($1,$2)
    ON CONFLICT (name) DO UPDATE SET version = EXCLUDED.version
    RETURNING id
  `, name, version).Scan(&id)
	return id, err
}

func ensureLibraryControl(ctx context.Context, pool *pgxpool.Pool, standardID string, control seedControl) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO library_controls (standard_id, code, title, description, default_review_interval_days)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (standard_id, code) DO NOTHING
  `, standardID, control.code, control.title, control.description, control.intervalDays)
	return err
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("seed admin password must not be empty")
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, display_name, role, status)
    VALUES ($1,$2,$3,$4,$5)
  `, email, hash, "Administrator", auth.RoleAdmin, auth.UserStatusActive)
	return err
}
