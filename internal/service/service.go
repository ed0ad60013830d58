// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the business rules on top of the store layer:
// article lifecycle, social fan-out, search routing, moderation, feeds,
// collaboration and analytics. Services raise typed apperr errors; handlers
// translate them to HTTP statuses.
package service

import "inkwell/internal/models"

// staff reports whether a role may publish, schedule and filter by status.
func staff(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleEditor
}
