package auth

import (
	"context"
	"testing"
)

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestHasPermission(t *testing.T) {
	perms := NewPermissions()

	ok, err := perms.HasPermission(context.Background(), RoleViewer, PermControlsRead)
	if err != nil || !ok {
		t.Fatalf("expected viewer to read controls, got ok=%v err=%v", ok, err)
	}

	ok, err = perms.HasPermission(context.Background(), RoleViewer, PermControlsWrite)
	if err != nil || ok {
		t.Fatalf("expected viewer denied controls.write, got ok=%v err=%v", ok, err)
	}

	ok, err = perms.HasPermission(context.Background(), "unknown", PermControlsRead)
	if err != nil || ok {
		t.Fatalf("expected unknown role denied, got ok=%v err=%v", ok, err)
	}
}
