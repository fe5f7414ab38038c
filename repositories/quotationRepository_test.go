package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"CotizaLab/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func staticProvider(db *gorm.DB) ConnProvider {
	return func(ctx context.Context) (*gorm.DB, error) { return db, nil }
}

func quotationColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"folio", "nombre_paciente", "documento_id", "tipo_documento_label",
		"fecha_cotizacion", "total_bono", "total_copago", "total_general", "total_preferencial",
	})
}

func TestQuotationLookupFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuotationRepository(staticProvider(db))

	issued := time.Date(2026, 5, 12, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "cotizaciones" WHERE folio = \$1`).
		WillReturnRows(quotationColumns().
			AddRow("A1B2C3D4", "María Pérez", "12.345.678-9", "RUT", issued, 500, 1000, 1500, 1200))
	mock.ExpectQuery(`SELECT \* FROM "detalle_cotizaciones" WHERE folio_cotizacion = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"folio_cotizacion", "codigo_examen", "nombre_examen", "valor_copago"}).
			AddRow("A1B2C3D4", "100", nil, nil).
			AddRow("A1B2C3D4", "200", "Glicemia", 400))

	master, items, err := repo.Lookup(context.Background(), "A1B2C3D4")
	require.NoError(t, err)
	require.NotNil(t, master)
	assert.Equal(t, "A1B2C3D4", master.Folio)
	assert.Equal(t, "María Pérez", master.PatientName)
	assert.Equal(t, int64(1500), master.TotalGeneral)

	require.Len(t, items, 2)
	assert.Equal(t, "100", items[0].Code)
	assert.Nil(t, items[0].Name)
	require.NotNil(t, items[1].Name)
	assert.Equal(t, "Glicemia", *items[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationLookupNotFoundIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuotationRepository(staticProvider(db))

	mock.ExpectQuery(`SELECT \* FROM "cotizaciones" WHERE folio = \$1`).
		WillReturnRows(quotationColumns())

	master, items, err := repo.Lookup(context.Background(), "ZZZZZZZZ")
	require.NoError(t, err)
	assert.Nil(t, master)
	assert.Nil(t, items)

	// the detail query must not run for a missing master
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationLookupQueryFailureIsConnectivity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuotationRepository(staticProvider(db))

	mock.ExpectQuery(`SELECT \* FROM "cotizaciones"`).
		WillReturnError(errors.New("server closed the connection unexpectedly"))

	_, _, err := repo.Lookup(context.Background(), "A1B2C3D4")
	assert.ErrorIs(t, err, models.ErrConnectivity)
}

func TestQuotationLookupPropagatesProviderError(t *testing.T) {
	repo := NewQuotationRepository(func(ctx context.Context) (*gorm.DB, error) {
		return nil, models.ErrConfiguration
	})

	_, _, err := repo.Lookup(context.Background(), "A1B2C3D4")
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestOrderLookupFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(staticProvider(db))

	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "ordenes_clinicas" WHERE folio_orden = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"folio_orden", "rut_paciente", "fecha_creacion"}).
			AddRow("120045", "12.345.678-9", created))
	mock.ExpectQuery(`SELECT \* FROM "ordenes_detalles" WHERE folio_orden = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"folio_orden", "codigo_examen", "nombre_examen"}).
			AddRow("120045", "300", "Perfil Lipídico"))

	master, items, err := repo.Lookup(context.Background(), "120045")
	require.NoError(t, err)
	require.NotNil(t, master)
	assert.Equal(t, "120045", master.OrderFolio)
	require.Len(t, items, 1)
	assert.Equal(t, "300", items[0].Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
