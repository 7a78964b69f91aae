package catalogController

import (
	"context"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/utils"
)

// CatalogController serves the lookup lists the search and listing forms render.
type CatalogController struct {
	catalogRepo  repositories.CatalogRepository
	locationRepo repositories.LocationRepository
	db           database.DB
	Config       config.Config
}

type CatalogControllerInterface interface {
	GetAmenities(ctx context.Context) ([]Amenity, error)
	GetPropertyTypes(ctx context.Context) ([]PropertyType, error)
	GetLocations(ctx context.Context) ([]Location, error)
	CreateAmenity(ctx context.Context, user *User, name string) (*Amenity, error)
	CreatePropertyType(ctx context.Context, user *User, name string) (*PropertyType, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) CatalogControllerInterface {
	return &CatalogController{
		catalogRepo:  repos.Catalog,
		locationRepo: repos.Location,
		db:           db,
		Config:       config,
	}
}

func (c *CatalogController) GetAmenities(ctx context.Context) ([]Amenity, error) {
	return c.catalogRepo.GetAmenities(ctx, c.db.SQL)
}

func (c *CatalogController) GetPropertyTypes(ctx context.Context) ([]PropertyType, error) {
	return c.catalogRepo.GetPropertyTypes(ctx, c.db.SQL)
}

func (c *CatalogController) GetLocations(ctx context.Context) ([]Location, error) {
	return c.locationRepo.GetAll(ctx, c.db.SQL)
}

func (c *CatalogController) CreateAmenity(ctx context.Context, user *User, name string) (*Amenity, error) {
	name, err := validateName(user, name)
	if err != nil {
		return nil, err
	}

	amenity := &Amenity{Name: name}
	if err := c.catalogRepo.CreateAmenity(ctx, c.db.SQL, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

func (c *CatalogController) CreatePropertyType(
	ctx context.Context,
	user *User,
	name string,
) (*PropertyType, error) {
	name, err := validateName(user, name)
	if err != nil {
		return nil, err
	}

	propertyType := &PropertyType{Name: name}
	if err := c.catalogRepo.CreatePropertyType(ctx, c.db.SQL, propertyType); err != nil {
		return nil, err
	}
	return propertyType, nil
}

func validateName(user *User, name string) (string, error) {
	if !user.IsAdmin() {
		return "", ErrForbidden
	}

	name = utils.CleanText(name)
	errs := ValidationErrors{}
	utils.ValidateVar(errs, "name", name, "required,max=100")
	return name, errs.OrNil()
}
