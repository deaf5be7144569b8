package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
)

func TestAddAndListImages(t *testing.T) {
	uow := newMemUnitOfWork()
	svc := NewPropertyImageService(uow)
	owner := seedOwner(uow, "Jane")
	prop := seedProperty(uow, owner.ID, "Villa", 100000, 2000, true)

	data := []byte{0x89, 0x50, 0x4E, 0x47}
	added, err := svc.Add(context.Background(), prop.ID, data)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.SizeBytes != len(data) {
		t.Errorf("SizeBytes = %d, want %d", added.SizeBytes, len(data))
	}

	images, err := svc.GetByProperty(context.Background(), prop.ID)
	if err != nil {
		t.Fatalf("GetByProperty: %v", err)
	}
	if len(images) != 1 || images[0].ID != added.ID {
		t.Errorf("listing = %+v", images)
	}

	file, err := svc.GetFile(context.Background(), added.ID)
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(file) != string(data) {
		t.Errorf("file bytes do not round-trip")
	}
}

func TestAddImageUnknownProperty(t *testing.T) {
	uow := newMemUnitOfWork()
	svc := NewPropertyImageService(uow)

	if _, err := svc.Add(context.Background(), 77, []byte{1}); !errors.Is(err, apperrors.ErrPropertyNotFound) {
		t.Fatalf("error = %v, want property not found", err)
	}
}

func TestDisabledImageIsHidden(t *testing.T) {
	uow := newMemUnitOfWork()
	svc := NewPropertyImageService(uow)
	owner := seedOwner(uow, "Jane")
	prop := seedProperty(uow, owner.ID, "Villa", 100000, 2000, true)

	added, err := svc.Add(context.Background(), prop.ID, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Disable(context.Background(), added.ID); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	images, err := svc.GetByProperty(context.Background(), prop.ID)
	if err != nil {
		t.Fatalf("GetByProperty: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("disabled image still listed: %+v", images)
	}

	if _, err := svc.GetFile(context.Background(), added.ID); !errors.Is(err, apperrors.ErrImageNotFound) {
		t.Errorf("GetFile error = %v, want image not found", err)
	}

	// A second disable finds nothing live to flip.
	if err := svc.Disable(context.Background(), added.ID); !errors.Is(err, apperrors.ErrImageNotFound) {
		t.Errorf("second disable error = %v, want image not found", err)
	}
}

func TestTraceListOrderedByDate(t *testing.T) {
	uow := newMemUnitOfWork()
	svc := NewPropertyTraceService(uow)
	owner := seedOwner(uow, "Jane")
	prop := seedProperty(uow, owner.ID, "Villa", 100000, 2000, true)

	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(context.Background(), prop.ID, &dto.CreatePropertyTraceRequest{
		DateSale: later, Name: strPtr("Second Sale"),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), prop.ID, &dto.CreatePropertyTraceRequest{
		DateSale: earlier, Name: strPtr("First Sale"),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	traces, err := svc.GetByProperty(context.Background(), prop.ID)
	if err != nil {
		t.Fatalf("GetByProperty: %v", err)
	}
	if len(traces) != 2 {
		t.Fatalf("got %d traces, want 2", len(traces))
	}
	if *traces[0].Name != "First Sale" || *traces[1].Name != "Second Sale" {
		t.Errorf("wrong order: %q then %q", *traces[0].Name, *traces[1].Name)
	}
}

func TestTraceGetByID(t *testing.T) {
	uow := newMemUnitOfWork()
	svc := NewPropertyTraceService(uow)
	owner := seedOwner(uow, "Jane")
	prop := seedProperty(uow, owner.ID, "Villa", 100000, 2000, true)

	created, err := svc.Create(context.Background(), prop.ID, &dto.CreatePropertyTraceRequest{
		DateSale: time.Now(), Name: strPtr("Sale"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PropertyID != prop.ID {
		t.Errorf("PropertyID = %d, want %d", got.PropertyID, prop.ID)
	}

	if _, err := svc.GetByID(context.Background(), 9999); !errors.Is(err, apperrors.ErrTraceNotFound) {
		t.Errorf("error = %v, want trace not found", err)
	}
}

func TestTraceCreateUnknownProperty(t *testing.T) {
	uow := newMemUnitOfWork()
	svc := NewPropertyTraceService(uow)

	_, err := svc.Create(context.Background(), 404, &dto.CreatePropertyTraceRequest{DateSale: time.Now()})
	if !errors.Is(err, apperrors.ErrPropertyNotFound) {
		t.Fatalf("error = %v, want property not found", err)
	}
}
