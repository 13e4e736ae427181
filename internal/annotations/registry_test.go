package annotations

import "testing"

func TestRegisterBuiltinSchemas(t *testing.T) {
	registry := NewRegistry()
	if err := RegisterBuiltinSchemas(registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, annotationType := range []AnnotationType{
		ProviderAnnotation, PathAnnotation, DescriptionAnnotation, BundleAnnotation,
	} {
		if !registry.IsRegistered(annotationType) {
			t.Errorf("expected %s to be registered", annotationType)
		}
	}

	if got := len(registry.ListTypes()); got != 4 {
		t.Errorf("expected 4 registered types, got %d", got)
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(PathAnnotation, PathAnnotationSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Register(PathAnnotation, PathAnnotationSchema); err == nil {
		t.Fatal("expected error for duplicate registration")
	}
}

func TestRegisterRejectsMismatchedType(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(ProviderAnnotation, PathAnnotationSchema); err == nil {
		t.Fatal("expected error for mismatched schema type")
	}
}

func TestGetSchemaUnregistered(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.GetSchema(BundleAnnotation); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}
