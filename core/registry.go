package core

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
)

var (
	ErrUnknownTenant    = errors.New("no active client for that subdomain")
	ErrSubdomainTaken   = errors.New("subdomain is already registered")
	ErrInvalidSubdomain = errors.New("invalid subdomain")
)

// DefaultBreakRules is the break table every new tenant starts with:
// nothing under 5 hours, 30 minutes from 5 hours up.
func DefaultBreakRules(clientID int32) []model.BreakRule {
	return []model.BreakRule{
		{ClientID: clientID, MinHours: 0, BreakMinutes: 0},
		{ClientID: clientID, MinHours: 5, BreakMinutes: 30},
	}
}

// EnsureAdminSchema creates and migrates the shared admin schema. Called at
// startup; safe to repeat.
func (dm *DatabaseManager) EnsureAdminSchema(ctx context.Context) error {
	if _, err := dm.SqlDB.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+AdminSchema+"`"); err != nil {
		return fmt.Errorf("create admin schema: %w", err)
	}
	return dm.ExecAdmin(ctx, func(db *gorm.DB) error {
		return db.AutoMigrate(model.AdminModels()...)
	})
}

// ResolveClient maps a request host to its active client, or
// ErrUnknownTenant. Suspended clients resolve like missing ones.
func (dm *DatabaseManager) ResolveClient(ctx context.Context, host string) (*model.Client, error) {
	subdomain := SubdomainOf(host)
	if !schemaPattern.MatchString(subdomain) {
		return nil, ErrInvalidSubdomain
	}

	var client model.Client
	err := dm.ExecAdmin(ctx, func(db *gorm.DB) error {
		return db.Where("subdomain = ? AND status = ?", subdomain, model.ClientStatusActive).
			First(&client).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownTenant
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ProvisionInput describes a new tenant.
type ProvisionInput struct {
	Name        string
	Subdomain   string
	ManagerName string
	ManagerPin  string
}

// Provision registers a client, creates and migrates its schema, and seeds
// the default break table plus the first manager (role admin). The client
// row starts suspended and only flips to active once the schema is fully
// set up, so a half-provisioned tenant never resolves; on a setup failure
// the registration is rolled back and the subdomain can be retried.
func (dm *DatabaseManager) Provision(ctx context.Context, in ProvisionInput) (*model.Client, error) {
	if !schemaPattern.MatchString(in.Subdomain) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubdomain, in.Subdomain)
	}
	if in.Subdomain == AdminSchema {
		return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidSubdomain, in.Subdomain)
	}

	pinHash, err := security.HashPin(in.ManagerPin)
	if err != nil {
		return nil, err
	}

	client := model.Client{
		Name:      in.Name,
		Subdomain: in.Subdomain,
		Status:    model.ClientStatusSuspended,
	}
	if err := dm.ExecAdmin(ctx, func(db *gorm.DB) error {
		var count int64
		if err := db.Model(&model.Client{}).Where("subdomain = ?", in.Subdomain).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSubdomainTaken
		}
		return db.Create(&client).Error
	}); err != nil {
		return nil, err
	}

	if err := dm.setupTenantSchema(ctx, client.ID, in, pinHash); err != nil {
		// free the subdomain for a retry
		_ = dm.ExecAdmin(ctx, func(db *gorm.DB) error {
			return db.Delete(&model.Client{}, client.ID).Error
		})
		return nil, err
	}

	if err := dm.ExecAdmin(ctx, func(db *gorm.DB) error {
		return db.Model(&model.Client{}).Where("id = ?", client.ID).
			Update("status", model.ClientStatusActive).Error
	}); err != nil {
		return nil, err
	}
	client.Status = model.ClientStatusActive
	return &client, nil
}

func (dm *DatabaseManager) setupTenantSchema(ctx context.Context, clientID int32, in ProvisionInput, pinHash string) error {
	if _, err := dm.SqlDB.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+in.Subdomain+"`"); err != nil {
		return fmt.Errorf("create tenant schema: %w", err)
	}
	return dm.Exec(ctx, in.Subdomain, func(db *gorm.DB) error {
		return initTenantSchema(db, clientID, in, pinHash)
	})
}

// initTenantSchema migrates a fresh tenant schema and seeds the default
// break table plus the first admin manager.
func initTenantSchema(db *gorm.DB, clientID int32, in ProvisionInput, pinHash string) error {
	if err := db.AutoMigrate(model.TenantModels()...); err != nil {
		return fmt.Errorf("migrate tenant schema: %w", err)
	}
	rules := DefaultBreakRules(clientID)
	if err := db.Create(&rules).Error; err != nil {
		return fmt.Errorf("seed break rules: %w", err)
	}
	manager := model.Manager{
		ClientID: clientID,
		Name:     in.ManagerName,
		PinHash:  pinHash,
		Role:     model.RoleAdmin,
	}
	return db.Create(&manager).Error
}

// Suspend disables a client; its subdomain stops resolving but the schema
// and its data stay put.
func (dm *DatabaseManager) Suspend(ctx context.Context, clientID int32) error {
	return dm.ExecAdmin(ctx, func(db *gorm.DB) error {
		result := db.Model(&model.Client{}).Where("id = ?", clientID).
			Update("status", model.ClientStatusSuspended)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("no client found with the given ID")
		}
		return nil
	})
}
