package setting

import (
	"context"
	"strings"

	"github.com/sideorder/sideorder/internal/model"
)

// Repository is the app settings key-value contract.
type Repository interface {
	// Get returns (nil, nil) when the key has never been written.
	Get(ctx context.Context, key string) (*model.Setting, error)
	Put(ctx context.Context, s *model.Setting) error
}

// ShopName reads the configured shop name, falling back to the default when
// unset or blank.
func ShopName(ctx context.Context, repo Repository) (string, error) {
	s, err := repo.Get(ctx, model.SettingShopName)
	if err != nil {
		return "", err
	}
	if s == nil || strings.TrimSpace(s.Value) == "" {
		return model.DefaultShopName, nil
	}
	return s.Value, nil
}

// SaveShopName trims the name and stores the default in place of a blank one.
func SaveShopName(ctx context.Context, repo Repository, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultShopName
	}
	if err := repo.Put(ctx, &model.Setting{Key: model.SettingShopName, Value: name}); err != nil {
		return "", err
	}
	return name, nil
}
