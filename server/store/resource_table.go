package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
)

var keysetResourceInterface = reflect.TypeOf((*models.KeysetResource)(nil)).Elem()

type queryBuilder interface {
	ToSQL() (string, []interface{}, error)
}

type tableDescriptor struct {
	tableName         string
	fieldPrefix       string
	idColName         string
	generationColName string
	createdAtColName  string
	isMutable         bool
}

type ResourceTable struct {
	logger.Log
	tableDescriptor
	db *DB
}

func NewResourceTable(db *DB, logFactory logger.LogFactory, resource models.Resource) *ResourceTable {
	return NewResourceTableWithTableName(db, logFactory, "", resource)
}

func NewResourceTableWithTableName(db *DB, logFactory logger.LogFactory, tableName string, resource models.Resource) *ResourceTable {
	desc := mustTableDescriptor(resource, tableName)
	return &ResourceTable{
		db:              db,
		tableDescriptor: desc,
		Log:             logFactory(fmt.Sprintf("%s_table", desc.tableName)),
	}
}

// MustDBModel verifies a resource model matches our conventions and contains suitable "db" tags.
//   - Model must contain one or more "db" tags
//   - All "db" tags must have a common field prefix e.g lost_post_ or member_ etc.
//   - There must be a prefix_id field e.g. lost_post_id or member_id etc.
//   - If the model is a models.MutableResource it must have a prefix_etag field e.g. lost_post_etag
func MustDBModel(resource models.Resource) {
	mustTableDescriptor(resource, "")
}

// Dialect returns the goqu dialect (aka SQL Driver e.g. sqlite3, postgres etc.) in use.
func (d *ResourceTable) Dialect() goqu.DialectWrapper {
	return goqu.Dialect(d.db.DriverName())
}

// Col returns the name of the column holding the named field, e.g. "title" is "lost_post_title".
func (d *ResourceTable) Col(field string) string {
	return d.fieldPrefix + "_" + field
}

// ReadByID reads an existing resource, looking it up by ResourceID.
// Returns gerror.ErrNotFound if the resource does not exist.
func (d *ResourceTable) ReadByID(ctx context.Context, txOrNil *Tx, id models.ResourceID, resource models.Resource) error {
	return d.ReadWhere(ctx, txOrNil, resource, goqu.Ex{d.idColName: id})
}

// ReadWhere reads an existing resource, looking it up using the supplied where clauses.
// Returns gerror.ErrNotFound if the resource does not exist.
func (d *ResourceTable) ReadWhere(ctx context.Context, txOrNil *Tx, resource models.Resource, where ...goqu.Expression) error {
	return d.ReadIn(ctx, txOrNil, resource, d.Dialect().From(d.tableName).Select(resource).Where(where...))
}

// ReadIn reads an existing resource from the supplied select dataset.
// Returns gerror.ErrNotFound if the resource does not exist.
func (d *ResourceTable) ReadIn(ctx context.Context, txOrNil *Tx, resource interface{}, ds *goqu.SelectDataset) error {
	ds = ds.Limit(1)
	return d.db.Read(txOrNil, func(db Reader) error {
		query, args, err := ds.ToSQL()
		if err != nil {
			return fmt.Errorf("error generating query: %w", err)
		}
		d.LogQuery(query, args)
		found, err := db.ScanStructContext(ctx, resource, query, args...)
		if err != nil {
			return MakeStandardDBError(err)
		}
		if !found {
			return gerror.NewErrNotFound("Not Found")
		}
		return nil
	})
}

// ListWhere reads all resources matching the supplied dataset into resources, which must be a pointer
// to a slice e.g. &[]*models.Station. Any ordering in ds is preserved.
func (d *ResourceTable) ListWhere(ctx context.Context, txOrNil *Tx, resources interface{}, ds *goqu.SelectDataset) error {
	return d.db.Read(txOrNil, func(db Reader) error {
		query, args, err := ds.ToSQL()
		if err != nil {
			return fmt.Errorf("error generating query: %w", err)
		}
		d.LogQuery(query, args)
		err = db.ScanStructsContext(ctx, resources, query, args...)
		if err != nil {
			return MakeStandardDBError(err)
		}
		return nil
	})
}

// ScanVals reads the single selected column of every row in ds into vals, which must be a pointer to a
// slice e.g. &[]string.
func (d *ResourceTable) ScanVals(ctx context.Context, txOrNil *Tx, vals interface{}, ds *goqu.SelectDataset) error {
	return d.db.Read(txOrNil, func(db Reader) error {
		query, args, err := ds.ToSQL()
		if err != nil {
			return fmt.Errorf("error generating query: %w", err)
		}
		d.LogQuery(query, args)
		err = db.ScanValsContext(ctx, vals, query, args...)
		if err != nil {
			return MakeStandardDBError(err)
		}
		return nil
	})
}

// Count returns the number of rows matching the supplied where clauses.
func (d *ResourceTable) Count(ctx context.Context, txOrNil *Tx, where ...goqu.Expression) (int, error) {
	var count int
	err := d.db.Read(txOrNil, func(db Reader) error {
		ds := d.Dialect().From(d.tableName).Select(goqu.COUNT(goqu.Star())).Where(where...)
		query, args, err := ds.ToSQL()
		if err != nil {
			return fmt.Errorf("error generating query: %w", err)
		}
		d.LogQuery(query, args)
		found, err := db.ScanValContext(ctx, &count, query, args...)
		if err != nil {
			return MakeStandardDBError(err)
		}
		if !found {
			return fmt.Errorf("error running count query; no count returned")
		}
		return nil
	})
	return count, err
}

// Exists returns true if at least one row matches the supplied where clauses.
func (d *ResourceTable) Exists(ctx context.Context, txOrNil *Tx, where ...goqu.Expression) (bool, error) {
	var id models.ResourceID
	var found bool
	err := d.db.Read(txOrNil, func(db Reader) error {
		ds := d.Dialect().From(d.tableName).Select(goqu.C(d.idColName)).Where(where...).Limit(1)
		query, args, err := ds.ToSQL()
		if err != nil {
			return fmt.Errorf("error generating query: %w", err)
		}
		d.LogQuery(query, args)
		found, err = db.ScanValContext(ctx, &id, query, args...)
		if err != nil {
			return MakeStandardDBError(err)
		}
		return nil
	})
	return found, err
}

// LockRowForUpdate takes out an exclusive row lock on the row for the specified resource ID.
// This function must be called within a transaction, and will block other transactions from locking, updating
// or deleting the row until this transaction ends.
// Returns gerror.ErrNotFound if the resource does not exist.
func (d *ResourceTable) LockRowForUpdate(ctx context.Context, tx *Tx, id models.ResourceID) error {
	if tx == nil {
		return fmt.Errorf("error locking database row for resource %s: no transaction specified", id)
	}
	// If database doesn't support row locking then assume we have table locking by default and don't need row locking
	if !d.db.SupportsRowLevelLocking() {
		return nil
	}
	return d.db.Read(tx, func(db Reader) error {
		ds := d.Dialect().From(d.tableName).Select(goqu.C(d.idColName)).
			Where(goqu.Ex{d.idColName: id}).ForUpdate(exp.Wait).Limit(1)
		query, args, err := ds.ToSQL()
		if err != nil {
			return fmt.Errorf("error generating query: %w", err)
		}
		d.LogQuery(query, args)
		var resultID models.ResourceID
		found, err := db.ScanValContext(ctx, &resultID, query, args...)
		if err != nil {
			return MakeStandardDBError(err)
		}
		if !found {
			return gerror.NewErrNotFound("Not Found")
		}
		return nil
	})
}

// Create a new resource. On success the database assigned id is set on the resource.
// Returns gerror.ErrAlreadyExists if a resource with matching unique properties already exists.
func (d *ResourceTable) Create(ctx context.Context, txOrNil *Tx, resource models.Resource) (err error) {
	err = resource.Validate()
	if err != nil {
		return gerror.NewErrValidationFailed(err.Error())
	}
	if mutable, ok := resource.(models.MutableResource); ok {
		err = d.setETag(mutable)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				mutable.SetETag("")
			}
		}()
	}
	return d.db.Write(txOrNil, func(db Writer) error {
		insert := db.Insert(d.tableName).Rows(resource)
		var id models.ResourceID
		if d.db.SupportsReturning() {
			_, err := d.LogInsert(insert.Returning(goqu.C(d.idColName))).Executor().ScanValContext(ctx, &id)
			if err != nil {
				return fmt.Errorf("error executing create query: %w", MakeStandardDBError(err))
			}
		} else {
			res, err := d.LogInsert(insert).Executor().ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("error executing create query: %w", MakeStandardDBError(err))
			}
			lastID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("error reading id of created resource: %w", err)
			}
			id = models.ResourceID(lastID)
		}
		resource.SetID(id)
		return nil
	})
}

// CreateMany inserts all resources in a single statement. Database assigned ids are not read back.
func (d *ResourceTable) CreateMany(ctx context.Context, txOrNil *Tx, resources []models.Resource) error {
	if len(resources) == 0 {
		return nil
	}
	rows := make([]interface{}, 0, len(resources))
	for _, resource := range resources {
		err := resource.Validate()
		if err != nil {
			return gerror.NewErrValidationFailed(err.Error())
		}
		if mutable, ok := resource.(models.MutableResource); ok {
			err = d.setETag(mutable)
			if err != nil {
				return err
			}
		}
		rows = append(rows, resource)
	}
	return d.db.Write(txOrNil, func(db Writer) error {
		_, err := d.LogInsert(db.Insert(d.tableName).Rows(rows...)).Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("error executing batch create query: %w", MakeStandardDBError(err))
		}
		return nil
	})
}

// findOrCreateReadFn must return gerror.ErrNotFound if the resource does not exist
type findOrCreateReadFn func(ctx context.Context, txOrNil *Tx) (models.Resource, error)

// findOrCreateCreateFn must return ErrAlreadyExists if the resource already exists, and
// return the newly created resource on success
type findOrCreateCreateFn func(ctx context.Context, txOrNil *Tx) (models.Resource, error)

// FindOrCreate creates a resource if it does not exist, otherwise it reads and returns the existing resource.
// Returns the resource as it is in the database, and true iff the resource was created.
func (d *ResourceTable) FindOrCreate(
	ctx context.Context,
	txOrNil *Tx,
	readFn findOrCreateReadFn,
	createFn findOrCreateCreateFn,
) (resource models.Resource, created bool, err error) {
	resource, created, err = d.findOrCreateInner(ctx, txOrNil, readFn, createFn)
	if err != nil && gerror.ToAlreadyExists(err) != nil {
		// Try once to accommodate a racing create. We would expect the next time around we enter into
		// the 'find' path.
		d.Infof("Conflicting create detected in findOrCreate - trying again once: %v", err)
		resource, created, err = d.findOrCreateInner(ctx, txOrNil, readFn, createFn)
	}
	return resource, created, err
}

func (d *ResourceTable) findOrCreateInner(
	ctx context.Context,
	txOrNil *Tx,
	readFn findOrCreateReadFn,
	createFn findOrCreateCreateFn,
) (resource models.Resource, created bool, err error) {
	resource, err = readFn(ctx, txOrNil)
	if err != nil {
		if gerror.ToNotFound(err) == nil {
			return nil, false, fmt.Errorf("error reading resource: %w", err)
		}
		resource, err = createFn(ctx, txOrNil)
		if err != nil {
			return nil, false, fmt.Errorf("error creating resource: %w", err)
		}
		created = true
	}
	return resource, created, nil
}

// DeleteByID idempotently deletes one resource by id.
func (d *ResourceTable) DeleteByID(ctx context.Context, txOrNil *Tx, id models.ResourceID) error {
	return d.DeleteWhere(ctx, txOrNil, goqu.Ex{d.idColName: id})
}

// DeleteWhere idempotently deletes one or more resources that match the supplied where clauses.
func (d *ResourceTable) DeleteWhere(ctx context.Context, txOrNil *Tx, where ...goqu.Expression) error {
	return d.db.Write(txOrNil, func(db Writer) error {
		_, err := d.logDelete(db.Delete(d.tableName).Where(where...)).Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("error executing delete query: %w", MakeStandardDBError(err))
		}
		return nil
	})
}

// UpdateByID updates an existing resource. Identifies the resource by id. Overrides all previous values using the supplied model.
// Applies optimistic locking if the resource supports models.MutableResource.
// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
func (d *ResourceTable) UpdateByID(ctx context.Context, txOrNil *Tx, resource models.Resource) error {
	return d.updateWhere(ctx, txOrNil, resource, goqu.Ex{d.idColName: resource.GetID()})
}

// UpdateColumns sets the supplied columns on the rows matching where, without optimistic locking.
// Returns the number of rows updated.
func (d *ResourceTable) UpdateColumns(ctx context.Context, txOrNil *Tx, record goqu.Record, where ...goqu.Expression) (int64, error) {
	var rowsAffected int64
	err := d.db.Write(txOrNil, func(db Writer) error {
		res, err := d.LogUpdate(db.Update(d.tableName).Set(record).Where(where...)).Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("error executing update query: %w", MakeStandardDBError(err))
		}
		rowsAffected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading rows affected: %w", MakeStandardDBError(err))
		}
		return nil
	})
	return rowsAffected, err
}

// updateWhere updates an existing resource. Identifies the resource via where clauses. Overrides all previous values using the supplied model.
// Applies optimistic locking if the resource supports models.MutableResource.
// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
func (d *ResourceTable) updateWhere(ctx context.Context, txOrNil *Tx, resource models.Resource, where ...goqu.Expression) (err error) {
	err = resource.Validate()
	if err != nil {
		return gerror.NewErrValidationFailed(err.Error())
	}
	mutable, ok := resource.(models.MutableResource)
	if ok {
		origETag := mutable.GetETag()
		err = d.setETag(mutable)
		if err != nil {
			return err
		}
		if origETag != models.ETagAny {
			where = append(where, goqu.Ex{d.generationColName: origETag})
		}
		defer func() {
			if err != nil {
				mutable.SetETag(origETag)
			}
		}()
	}
	return d.db.Write(txOrNil, func(db Writer) error {
		res, err := d.LogUpdate(db.Update(d.tableName).Set(resource).Where(where...)).Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("error executing update query: %w", MakeStandardDBError(err))
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading rows affected: %w", MakeStandardDBError(err))
		}
		if rowsAffected == 0 {
			if mutable == nil {
				return gerror.NewErrNotFound(fmt.Sprintf("%s %s does not exist", resource.GetKind(), resource.GetID()))
			}
			return gerror.NewErrOptimisticLockFailed("ETag does not match")
		}
		return nil
	})
}

func (d *ResourceTable) setETag(resource models.MutableResource) error {
	hash, err := hashstructure.Hash(resource, hashstructure.FormatV2, nil)
	if err != nil {
		return fmt.Errorf("error calculating resource hash: %w", err)
	}
	resource.SetETag(models.ETag(fmt.Sprintf("\"%x\"", hash)))
	return nil
}

// ListKeyset lists one page of the resources in the supplied select dataset, ordered by the column selected by
// sortKey (newest first) with the id as tie-breaker. Any ordering or limit in ds is replaced.
// Resources must be a pointer to a slice of a keyset resource type e.g. &[]*models.LostPost.
// The page starts strictly after pagination.PageToken. The token is only used as a bound, so a token
// for a row that has since been deleted continues from where that row would have been.
// Returns the token for the next page, or nil if this is the last page.
func (d *ResourceTable) ListKeyset(
	ctx context.Context,
	txOrNil *Tx,
	resources interface{},
	ds *goqu.SelectDataset,
	sortKey models.SortKeyKind,
	pagination models.Pagination,
) (*models.PageToken, error) {
	err := pagination.Validate()
	if err != nil {
		return nil, err
	}
	slicePtr := reflect.TypeOf(resources)
	if slicePtr.Kind() != reflect.Ptr {
		d.Panicf("expected pointer to slice, found: %T", resources)
	}
	sliceT := slicePtr.Elem()
	sliceV := reflect.ValueOf(resources).Elem()
	if sliceT.Kind() != reflect.Slice {
		d.Panicf("expected slice, found: %T", resources)
	}
	if !sliceT.Elem().Implements(keysetResourceInterface) {
		d.Panicf("expected slice of keyset resource, found: %s", sliceT.Elem())
	}

	sortCol := goqu.C(d.Col(sortKey.String()))
	idCol := goqu.C(d.idColName)
	if token := pagination.PageToken; token != nil {
		ds = ds.Where(goqu.Or(
			sortCol.Lt(token.SortValue),
			goqu.And(
				sortCol.Eq(token.SortValue),
				idCol.Lt(token.ID),
			),
		))
	}
	ds = ds.Order(sortCol.Desc(), idCol.Desc()).Limit(uint(pagination.PageSize + 1))

	err = d.ListWhere(ctx, txOrNil, resources, ds)
	if err != nil {
		return nil, err
	}

	// The extra row only tells us there is a next page
	if sliceV.Len() <= pagination.PageSize {
		return nil, nil
	}
	sliceV.Set(sliceV.Slice(0, pagination.PageSize))
	last := sliceV.Index(pagination.PageSize - 1).Interface().(models.KeysetResource)
	return models.NewPageToken(last, sortKey), nil
}

func MakeStandardDBError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrConstraint &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
			return gerror.NewErrAlreadyExists("Resource already exists").Wrap(sqliteErr)
		}
		if sqliteErr.Code == sqlite3.ErrNotFound {
			return gerror.NewErrNotFound("Resource not found").Wrap(sqliteErr)
		}
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		// 23505 -> unique_violation
		if pgErr.Code == "23505" {
			return gerror.NewErrAlreadyExists("Resource already exists").Wrap(pgErr)
		}
		// P0002 -> no_data_found
		if pgErr.Code == "P0002" {
			return gerror.NewErrNotFound("Resource not found").Wrap(pgErr)
		}
	}
	return err
}

// LogSelect logs a select query via the configured logger.
func (d *ResourceTable) LogSelect(ds *goqu.SelectDataset) *goqu.SelectDataset {
	d.logQueryDS(ds)
	return ds
}

// LogInsert logs an insert query via the configured logger.
func (d *ResourceTable) LogInsert(ds *goqu.InsertDataset) *goqu.InsertDataset {
	d.logQueryDS(ds)
	return ds
}

// LogUpdate logs an update query via the configured logger.
func (d *ResourceTable) LogUpdate(ds *goqu.UpdateDataset) *goqu.UpdateDataset {
	d.logQueryDS(ds)
	return ds
}

func (d *ResourceTable) logDelete(ds *goqu.DeleteDataset) *goqu.DeleteDataset {
	d.logQueryDS(ds)
	return ds
}

// logQueryDS generates and logs the raw SQL of a query to the configured logger.
func (d *ResourceTable) logQueryDS(ds queryBuilder) {
	query, args, err := ds.ToSQL()
	if err != nil {
		d.Errorf("Error generating query: %v", err)
		return
	}
	d.LogQuery(query, args)
}

// LogQuery logs a SQL query and args to the configured logger.
func (d *ResourceTable) LogQuery(query string, args []interface{}) {
	d.WithFields(logger.Fields{"query": query, "args": args}).Trace()
}

func (d *ResourceTable) TableName() string {
	return d.tableName
}

// IDColName returns the name of the primary key column, e.g. "lost_post_id".
func (d *ResourceTable) IDColName() string {
	return d.idColName
}

// mustTableDescriptor generates a table descriptor for a resource model. Panics if the model does not match our conventions.
// See MustDBModel for a description of the rules.
func mustTableDescriptor(resource models.Resource, tableNameOverride string) tableDescriptor {
	t := reflect.TypeOf(resource)
	fieldMap := make(map[string]struct{})
	collectDBTags(t, fieldMap)

	fieldPrefix := "" // e.g. lost_post
	for val := range fieldMap {
		candidate := strings.TrimSuffix(val, idColSuffix) // in case there is only one field (assuming it's id, which is required)
		if fieldPrefix == "" {
			fieldPrefix = candidate
			continue
		}
		k := 0
		for ; k < min(len(candidate), len(fieldPrefix)); k++ {
			if candidate[k] != fieldPrefix[k] {
				k--
				break
			}
		}
		if k <= 0 {
			panic("All db fields must be prefixed with the table name")
		}
		fieldPrefix = candidate[:k]
	}
	fieldPrefix = strings.TrimSuffix(fieldPrefix, "_")
	if fieldPrefix == "" {
		panic("Unable to determine db field prefix")
	}

	expectedFieldExists := map[string]bool{
		makeIDColName(fieldPrefix): false, // e.g. lost_post_id
	}
	_, isMutable := resource.(models.MutableResource)
	if isMutable {
		expectedFieldExists[makeETagColName(fieldPrefix)] = false // e.g. lost_post_etag
	}
	for val := range fieldMap {
		if _, ok := expectedFieldExists[val]; ok {
			expectedFieldExists[val] = true
		}
	}

	tableName := tableNameOverride
	if tableName == "" {
		tableName = fieldPrefix + "s" // e.g. lost_posts
	}

	for field, exists := range expectedFieldExists {
		if !exists {
			panic(fmt.Sprintf("expected %q model to contain a field with a \"db\" tag matching %q", tableName, field))
		}
	}

	return tableDescriptor{
		tableName:         tableName,
		fieldPrefix:       fieldPrefix,
		idColName:         makeIDColName(fieldPrefix),
		createdAtColName:  makeCreatedAtFieldName(fieldPrefix),
		generationColName: makeETagColName(fieldPrefix),
		isMutable:         isMutable,
	}
}

// collectDBTags returns a map containing the db tag values of all fields in the flattened t.
func collectDBTags(t reflect.Type, fieldMap map[string]struct{}) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			collectDBTags(field.Type, fieldMap)
		} else {
			val, ok := field.Tag.Lookup(dbTagName)
			if ok {
				fieldMap[val] = struct{}{}
			}
		}
	}
}

const dbTagName = "db"

const idColSuffix = "_id"

func makeIDColName(fieldPrefix string) string {
	return fieldPrefix + idColSuffix
}

const eTagColSuffix = "_etag"

func makeETagColName(fieldPrefix string) string {
	return fieldPrefix + eTagColSuffix
}

const createdAtColSuffix = "_created_at"

func makeCreatedAtFieldName(fieldPrefix string) string {
	return fieldPrefix + createdAtColSuffix
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
