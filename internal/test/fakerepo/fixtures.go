// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fakerepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/core/model"
)

// Epoch is the creation time of the first fixture listing. Each next
// listing is created one hour later.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewListing creates an active listing with a fresh identifier and the
// given main attributes. The remaining fields are filled with
// plausible values.
func NewListing(
	brand, name string, year int, price float64, mileage int,
) model.Listing {
	return model.Listing{
		ID:              uuid.New(),
		Make:            brand,
		Model:           name,
		Year:            year,
		Price:           price,
		Mileage:         mileage,
		FuelType:        "Gasoline",
		Transmission:    "Automatic",
		ConditionRating: model.DefaultConditionRating,
		Images:          []string{},
		Features:        []string{},
		Status:          model.ListingStatusActive,
		CreatedAt:       Epoch,
		UpdatedAt:       Epoch,
	}
}

// Showroom returns a handful of listings which are created one hour
// apart, in the given order, so the last one is the newest.
func Showroom() []model.Listing {
	ev := "Electric"
	sedan, suv := "Sedan", "SUV"
	ls := []model.Listing{
		NewListing("Toyota", "Camry", 2022, 28500, 15000),
		NewListing("Honda", "Civic", 2021, 24000, 22000),
		NewListing("BMW", "X5", 2023, 65000, 8000),
		NewListing("Tesla", "Model 3", 2022, 42000, 12000),
		NewListing("Toyota", "RAV4", 2020, 31000, 30000),
	}
	ls[0].BodyType = &sedan
	ls[0].Features = []string{"Backup Camera", "Bluetooth"}
	ls[1].BodyType = &sedan
	ls[1].Transmission = "Manual"
	ls[2].BodyType = &suv
	ls[2].Features = []string{"Leather Seats", "Panoramic Sunroof"}
	ls[3].BodyType = &sedan
	ls[3].FuelType = ev
	ls[3].Description = "Autopilot included"
	ls[4].BodyType = &suv
	ls[4].Status = model.ListingStatusInactive
	for i := range ls {
		ls[i].CreatedAt = Epoch.Add(time.Duration(i) * time.Hour)
		ls[i].UpdatedAt = ls[i].CreatedAt
	}
	return ls
}
