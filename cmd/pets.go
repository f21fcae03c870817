// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/browser"
	"petway/cli/internal/domain"
	"petway/cli/internal/listing"
	"petway/cli/internal/route"
)

var (
	listFilter     string
	showCopyPhone  bool
	showCopyCoords bool
	showOpenMap    bool
	nearLat        float64
	nearLng        float64
	nearRadius     int
)

// petsCmd groups the listing commands.
var petsCmd = &cobra.Command{
	Use:     "pets",
	Aliases: []string{"mascotas"},
	Short:   "Browse, publish and manage pet listings",
}

var petsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"search"},
	Short:   "List all pets, optionally filtered",
	Long: `The list command shows every published pet. --filter keeps the pets whose
name, type, city or status contains the given text, ignoring case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		view := route.Home
		if listFilter != "" {
			view = route.Search
		}
		a.router.Navigate(view)
		pets, err := spin("Loading pets", func() ([]domain.Pet, error) {
			return a.pets.Search(cmd.Context(), listFilter)
		})
		if err != nil {
			return fail(err, "loading pets")
		}
		printPets(pets)
		return nil
	},
}

var petsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the pets you published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.enter(route.MyPets) {
			return nil
		}
		pets, err := spin("Loading your pets", func() ([]domain.Pet, error) {
			return a.pets.Mine(cmd.Context())
		})
		if err != nil {
			return fail(err, "loading your pets")
		}
		printPets(pets)
		return nil
	},
}

var petsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one pet in detail",
	Long: `The show command prints a listing with its contact phone and location.
Anonymous users do not see the phone number. --copy-phone and --copy-coords
put the phone or "lat,lng" on the clipboard, and --open-map opens driving
directions in your browser.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		a.router.Navigate(route.PetDetail)
		d, err := spin("Loading pet", func() (*listing.Detail, error) {
			return a.pets.Get(cmd.Context(), args[0])
		})
		if err != nil {
			return fail(err, "loading the pet")
		}
		printDetail(d, a.pets.Photo(d.Pet))

		if showCopyPhone {
			copyText("Phone", d.Pet.Phone, d.PhoneLine())
		}
		if showCopyCoords {
			copyText("Coordinates", d.CoordinatesText(), "This pet has no location")
		}
		if showOpenMap {
			if u := d.MapsURL(); u == "" {
				pterm.Warning.Println("This pet has no location")
			} else if err := browser.Open(u); err != nil {
				pterm.Warning.Printf("Could not open the browser: %v\n", err)
				pterm.Println(u)
			}
		}
		return nil
	},
}

var petsNearCmd = &cobra.Command{
	Use:   "near",
	Short: "List pets near a location",
	Long: `The near command asks the server for pets within --radius meters (default
from config, 5000) of the given latitude and longitude.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		radius := nearRadius
		if !cmd.Flags().Changed("radius") {
			radius = a.cfg.NearRadius
		}
		a.router.Navigate(route.Search)
		pets, err := spin("Searching nearby", func() ([]domain.Pet, error) {
			return a.pets.Near(cmd.Context(), nearLat, nearLng, radius)
		})
		if err != nil {
			return fail(err, "searching nearby pets")
		}
		printPets(pets)
		return nil
	},
}

var petsStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Toggle a pet you own between lost and found",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		a.router.Navigate(route.PetDetail)
		d, err := spin("Loading pet", func() (*listing.Detail, error) {
			return a.pets.Get(cmd.Context(), args[0])
		})
		if err != nil {
			return fail(err, "loading the pet")
		}
		msg, err := spin("Updating status", func() (string, error) {
			return a.pets.ToggleStatus(cmd.Context(), d)
		})
		if err != nil {
			return fail(err, "updating the status")
		}
		success(msg, fmt.Sprintf("%s is now marked as %s", d.Pet.Name, d.Pet.Status.Label()))
		return nil
	},
}

var deleteYes bool

var petsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pet you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		a.router.Navigate(route.PetDetail)
		d, err := spin("Loading pet", func() (*listing.Detail, error) {
			return a.pets.Get(cmd.Context(), args[0])
		})
		if err != nil {
			return fail(err, "loading the pet")
		}
		confirm := a.prompt.Confirm
		if deleteYes {
			confirm = func(string) bool { return true }
		}
		ok, msg, err := a.pets.Delete(cmd.Context(), d, confirm)
		if err != nil {
			return fail(err, "deleting the pet")
		}
		if !ok {
			pterm.Info.Println("Nothing was deleted")
			return nil
		}
		a.router.Navigate(route.Home)
		success(msg, "Pet deleted")
		return nil
	},
}

func init() {
	petsListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Keep pets whose name, type, city or status contains this text")
	petsShowCmd.Flags().BoolVar(&showCopyPhone, "copy-phone", false, "Copy the contact phone to the clipboard")
	petsShowCmd.Flags().BoolVar(&showCopyCoords, "copy-coords", false, "Copy \"lat,lng\" to the clipboard")
	petsShowCmd.Flags().BoolVar(&showOpenMap, "open-map", false, "Open directions in the browser")
	petsNearCmd.Flags().Float64Var(&nearLat, "lat", 0, "Latitude")
	petsNearCmd.Flags().Float64Var(&nearLng, "lng", 0, "Longitude")
	petsNearCmd.Flags().IntVar(&nearRadius, "radius", listing.DefaultRadius, "Search radius in meters")
	_ = petsNearCmd.MarkFlagRequired("lat")
	_ = petsNearCmd.MarkFlagRequired("lng")
	petsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	petsCmd.AddCommand(petsListCmd, petsMineCmd, petsShowCmd, petsNearCmd, petsPublishCmd, petsStatusCmd, petsDeleteCmd)
	rootCmd.AddCommand(petsCmd)
}

func printPets(pets []domain.Pet) {
	if len(pets) == 0 {
		pterm.Info.Println("No pets found")
		return
	}
	data := pterm.TableData{{"ID", "Name", "Type", "City", "Status"}}
	for _, p := range pets {
		data = append(data, []string{p.ID, p.Name, p.Kind, p.City, p.Status.Label()})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printDetail(d *listing.Detail, photo string) {
	p := d.Pet
	rows := pterm.TableData{
		{"Status", p.Status.Label()},
		{"Type", listing.Field(p.Kind)},
		{"Breed", listing.Field(p.Breed)},
		{"Age", listing.Field(string(p.Age))},
		{"City", listing.Field(p.City)},
		{"Phone", d.PhoneLine()},
		{"Published by", d.OwnerName()},
		{"Photo", photo},
	}
	if when := d.Published(); when != "" {
		rows = append(rows, []string{"Published", when})
	}
	if d.HasLocation() {
		rows = append(rows, []string{"Location", d.CoordinatesText()})
	}
	pterm.DefaultSection.Println(p.Name)
	_ = pterm.DefaultTable.WithData(rows).Render()
	if p.Description != "" {
		pterm.Println()
		pterm.Println(p.Description)
	}
	if note := d.LocationNote(); note != "" {
		pterm.Println()
		pterm.Info.Println(note)
	}
	if d.NeedsLoginForPhone() {
		pterm.Info.Println("Log in or register to see the contact phone: petway login")
	}
	if d.CanManage() {
		pterm.Println()
		pterm.Println(fmt.Sprintf("You own this listing. Mark it %s with: petway pets status %s", p.Status.Toggle().Label(), p.ID))
		pterm.Println("Delete it with: petway pets delete " + p.ID)
	}
}

// copyText puts text on the clipboard, or explains why there is nothing to copy.
func copyText(what, text, missing string) {
	if text == "" {
		pterm.Warning.Println(missing)
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		pterm.Warning.Printf("Could not copy to the clipboard: %v\n", err)
		return
	}
	pterm.Success.Printf("%s copied to the clipboard\n", what)
}
