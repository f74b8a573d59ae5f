package service

import (
	"context"
	"time"

	"deploytrack/internal/core/catalog"
	"deploytrack/internal/modkit/repokit"
	perr "deploytrack/internal/platform/errors"
	ptime "deploytrack/internal/platform/time"
	actdom "deploytrack/internal/services/activity/domain"
	"deploytrack/internal/services/api/components/repo"

	"github.com/google/uuid"
)

// Samples is the starter inventory written by Seed
var Samples = []repo.Row{
	{ComponentID: "VP-001", Name: "Customer Authentication API", URLLink: "https://lowcode.example.com/vp/auth-api",
		Type: "API", ChangeType: string(catalog.ChangeNew), Category: string(catalog.VisualProgramming),
		Description: "New REST API for customer authentication with OAuth2 support"},
	{ComponentID: "VP-002", Name: "Daily Sales Report DJOB", URLLink: "https://lowcode.example.com/vp/sales-djob",
		Type: "DJOB", ChangeType: string(catalog.ChangeUpdated), Category: string(catalog.VisualProgramming),
		Description: "Updated to include new metrics for Q4 reporting"},
	{ComponentID: "VP-003", Name: "Email Notification Function", URLLink: "https://lowcode.example.com/vp/email-func",
		Type: "Function", ChangeType: string(catalog.ChangeNew), Category: string(catalog.VisualProgramming),
		Description: "Serverless function for sending transactional emails"},
	{ComponentID: "EM-001", Name: "Customer Dashboard", URLLink: "https://lowcode.example.com/em/customer-dash",
		Type: "Single UI", ChangeType: string(catalog.ChangeUpdated), Category: string(catalog.ExperienceManager),
		Description: "Updated dashboard with new KPI widgets and real-time data"},
	{ComponentID: "EM-002", Name: "Admin Portal", URLLink: "https://lowcode.example.com/em/admin-portal",
		Type: "Multiple UI", ChangeType: string(catalog.ChangeNew), Category: string(catalog.ExperienceManager),
		Description: "Complete admin portal with user management and analytics"},
	{ComponentID: "EM-003", Name: "Order Entry Form", URLLink: "https://lowcode.example.com/em/order-form",
		Type: "Form", ChangeType: string(catalog.ChangeUpdated), Category: string(catalog.ExperienceManager),
		Description: "Added validation for international shipping addresses"},
	{ComponentID: "DM-001", Name: "Customer Database Schema", URLLink: "https://lowcode.example.com/dm/customer-schema",
		Type: "Schema", ChangeType: string(catalog.ChangeUpdated), Category: string(catalog.DataManager),
		Description: "Added new fields for GDPR compliance and data retention"},
	{ComponentID: "DM-002", Name: "Sales Analytics View", URLLink: "https://lowcode.example.com/dm/sales-view",
		Type: "View", ChangeType: string(catalog.ChangeNew), Category: string(catalog.DataManager),
		Description: "Materialized view for faster sales reporting queries"},
	{ComponentID: "DM-003", Name: "Data Migration Pipeline", URLLink: "https://lowcode.example.com/dm/migration-etl",
		Type: "ETL Pipeline", ChangeType: string(catalog.ChangeNew), Category: string(catalog.DataManager),
		Description: "ETL pipeline for migrating legacy customer data"},
}

// Seed inserts Samples when the inventory is empty and returns how many rows it wrote.
// Rows are a millisecond apart so the newest-first listing is stable
func (s *Svc) Seed(ctx context.Context) (int, error) {
	var written []repo.Row
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		n, err := r.Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		base := ptime.UTC(s.now())
		for i, sample := range Samples {
			row := sample
			row.UID = uuid.NewString()
			row.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
			row.UpdatedAt = row.CreatedAt
			if err := r.Insert(ctx, row); err != nil {
				return err
			}
			written = append(written, row)
		}
		return nil
	})
	if err != nil {
		return 0, perr.FromDB(err, "seed components")
	}
	for _, row := range written {
		s.record(ctx, actdom.KindComponentCreated, row)
	}
	return len(written), nil
}
