package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type seedProduct struct {
	Name, Description, ImageURL, Category string
	Price                                 float64
}

type seedDoctor struct {
	Name, Specialty string
	Times           []string
}

var catalogSeed = []seedProduct{
	{"Liquorice Lotion", "Brightening lotion that evens tone, fades dark spots and soothes irritation.", "/static/images/liquoricelotion.jpg", "skincare", 45000},
	{"Vitamin C Serum", "Reduces dark circles and scarring, protects against sun damage and supports collagen.", "/static/images/VitmenCserun.jpg", "skincare", 55000},
	{"Shampoo", "Available for oily, normal and dry hair. Suitable against dandruff.", "/static/images/Shampoo.jpg", "haircare", 35000},
	{"Shower Gel", "Body wash in lavender and lemon blossom scents.", "/static/images/showergel.jpg", "bodycare", 30000},
	{"Salicylic Acid", "Controls oil, smooths skin and reduces blackheads and pores.", "/static/images/salicylicacid.jpg", "skincare", 48000},
	{"Nail Oil", "Strengthens and lengthens nails.", "/static/images/oilnail.jpg", "nailcare", 25000},
	{"Perfume Splash", "Body mist in Pretty and Sea scents.", "/static/images/SplashPerfum.jpg", "fragrance", 40000},
	{"Sunblock", "Broad UV protection for every skin type.", "/static/images/Sunblock.jpg", "skincare", 50000},
	{"Niacinamide Serum", "Brightens, fights pigmentation and acne, slows skin ageing.", "/static/images/Nicmendserum.png", "skincare", 52000},
	{"TTO (Tea Tree Oil)", "Antibacterial and antifungal, calms inflammation.", "/static/images/TTO.jpg", "skincare", 35000},
	{"Body Lotion", "Deep moisture and softness for the body.", "/static/images/BodyLotion.png", "bodycare", 38000},
	{"Hyaluronic Acid Serum", "Intense hydration, fewer fine lines, brighter skin.", "/static/images/hyaluronicacid.png", "skincare", 58000},
	{"Whitening Cream", "Gentle brightening with deep moisture.", "/static/images/WhitingCream.png", "skincare", 42000},
	{"Hair Toner", "Vitamin toner against hair fall, adds density and shine.", "/static/images/HairToner.png", "haircare", 45000},
}

var doctorSeed = []seedDoctor{
	{"Dr. Layla Ahmad", "Dermatologist", []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}},
	{"Dr. Omar Hassan", "Cosmetic Dermatologist", []string{"10:00", "11:00", "12:00", "15:00", "16:00", "17:00"}},
	{"Dr. Fatima Al-Zahra", "Skin Care Specialist", []string{"08:00", "09:00", "10:00", "13:00", "14:00", "15:00"}},
	{"Dr. Nadin Abdulghani", "Aesthetic Dermatologist", []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00"}},
}

// SeedResult says which tables were filled by this run.
type SeedResult struct {
	Products int
	Doctors  int
}

// Seed fills the catalog and the doctor roster when their tables are empty.
// Each table is checked on its own, so a partially seeded database is completed.
func Seed(ctx context.Context, db DB) (SeedResult, error) {
	var res SeedResult
	err := InTx(ctx, db, func(tx pgx.Tx) error {
		empty, err := tableEmpty(ctx, tx, "products")
		if err != nil {
			return err
		}
		if empty {
			for _, p := range catalogSeed {
				if _, err := tx.Exec(ctx, `
					INSERT INTO products(name, description, price, image_url, category)
					VALUES ($1,$2,$3,$4,$5)`, p.Name, p.Description, p.Price, p.ImageURL, p.Category); err != nil {
					return fmt.Errorf("seed product %q: %w", p.Name, err)
				}
				res.Products++
			}
		}

		empty, err = tableEmpty(ctx, tx, "doctors")
		if err != nil {
			return err
		}
		if empty {
			for _, d := range doctorSeed {
				times, err := json.Marshal(d.Times)
				if err != nil {
					return err
				}
				if _, err := tx.Exec(ctx, `
					INSERT INTO doctors(name, specialty, available_times)
					VALUES ($1,$2,$3)`, d.Name, d.Specialty, string(times)); err != nil {
					return fmt.Errorf("seed doctor %q: %w", d.Name, err)
				}
				res.Doctors++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}

func tableEmpty(ctx context.Context, tx pgx.Tx, table string) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+`)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return !exists, nil
}
