package catalogstore

import (
	"bytes"
	_ "embed"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	json "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/assetdash/assetdash/pkg/types"
)

//go:embed catalog.schema.json
var catalogSchema []byte

const catalogSchemaName = "catalog.schema.json"

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compileSchemaOnce  sync.Once
	structValidator    *validator.Validate
	structValidatorErr error
)

func schema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(catalogSchemaName, bytes.NewReader(catalogSchema)); err != nil {
			compiledSchemaErr = err
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(catalogSchemaName)
	})
	return compiledSchema, compiledSchemaErr
}

func init() {
	structValidator = validator.New(validator.WithRequiredStructEnabled())
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	structValidatorErr = structValidator.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// validateDocument checks the raw JSON document against the catalog schema.
func validateDocument(doc []byte) error {
	sch, err := schema()
	if err != nil {
		return ErrCatalogError.MsgErr("invalid catalog schema", err)
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return ErrInvalidCatalog.MsgErr("catalog is not valid JSON", err)
	}
	if err := sch.Validate(v); err != nil {
		return ErrCatalogSchemaInvalid.Err(err)
	}
	return nil
}

// validateDatabase checks the decoded assets: required fields, coordinate
// ranges and unique ids.
func validateDatabase(db *types.AssetsDatabase) error {
	if structValidatorErr != nil {
		return ErrCatalogError.MsgErr("validator setup failed", structValidatorErr)
	}
	if err := structValidator.Struct(db); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			errs := make([]error, 0, len(ves))
			for _, fe := range ves {
				errs = append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return ErrInvalidCatalog.Err(errs...)
		}
		return ErrInvalidCatalog.Err(err)
	}
	dups := lo.FindDuplicatesBy(db.Assets, func(a types.Asset) string {
		return a.AssetID
	})
	if len(dups) > 0 {
		ids := lo.Map(dups, func(a types.Asset, _ int) string { return a.AssetID })
		return ErrDuplicateAssetID.Suffix(strings.Join(ids, ", "))
	}
	return nil
}
