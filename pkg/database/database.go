package database

import (
	"fmt"
	"log"

	"horizon_backend/internal/config"
	"horizon_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizSubmission{},
		&model.AuditLogEntry{},
		&model.Translation{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults inserts the initial catalog, application quizzes and string
// table on an empty database. Every block is guarded by a count so reruns
// are no-ops.
func seedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count == 0 {
		defaultProducts := []model.Product{
			{UUIDBase: model.UUIDBase{ID: "prod_001"}, NameKey: "product_vip_bronze_name", DescriptionKey: "product_vip_bronze_desc", Price: 9.99, ImageURL: "/uploads/products/vip_bronze.jpg", Enabled: true},
			{UUIDBase: model.UUIDBase{ID: "prod_002"}, NameKey: "product_vip_silver_name", DescriptionKey: "product_vip_silver_desc", Price: 19.99, ImageURL: "/uploads/products/vip_silver.jpg", Enabled: true},
			{UUIDBase: model.UUIDBase{ID: "prod_003"}, NameKey: "product_cash_1_name", DescriptionKey: "product_cash_1_desc", Price: 4.99, ImageURL: "/uploads/products/cash_pack.jpg", Enabled: true},
			{UUIDBase: model.UUIDBase{ID: "prod_004"}, NameKey: "product_custom_plate_name", DescriptionKey: "product_custom_plate_desc", Price: 14.99, ImageURL: "/uploads/products/custom_plate.jpg", Enabled: true},
		}
		for _, p := range defaultProducts {
			db.Create(&p)
		}
	}

	var quizCount int64
	db.Model(&model.Quiz{}).Count(&quizCount)
	if quizCount == 0 {
		defaultQuizzes := []model.Quiz{
			{
				UUIDBase:       model.UUIDBase{ID: "quiz_police_dept"},
				TitleKey:       "quiz_police_name",
				DescriptionKey: "quiz_police_desc",
				IsOpen:         true,
				Questions: []model.QuizQuestion{
					{TextKey: "q_police_1", TimeLimit: 60, Order: 0},
					{TextKey: "q_police_2", TimeLimit: 90, Order: 1},
				},
			},
			{
				UUIDBase:       model.UUIDBase{ID: "quiz_ems_dept"},
				TitleKey:       "quiz_medic_name",
				DescriptionKey: "quiz_medic_desc",
				IsOpen:         false,
				Questions: []model.QuizQuestion{
					{TextKey: "q_medic_1", TimeLimit: 75, Order: 0},
				},
			},
		}
		for _, q := range defaultQuizzes {
			db.Create(&q)
		}
	}

	var trCount int64
	db.Model(&model.Translation{}).Count(&trCount)
	if trCount == 0 {
		type entry struct{ key, en, ar string }
		defaults := []entry{
			{"product_vip_bronze_name", "Bronze VIP Membership", "عضوية VIP برونزية"},
			{"product_vip_bronze_desc", "Exclusive in-server perks for one month.", "مميزات حصرية داخل السيرفر لمدة شهر."},
			{"product_vip_silver_name", "Silver VIP Membership", "عضوية VIP فضية"},
			{"product_vip_silver_desc", "Better perks with special vehicle access.", "مميزات أفضل مع وصول خاص للمركبات."},
			{"product_cash_1_name", "100k Cash Pack", "حزمة نقدية 100 ألف"},
			{"product_cash_1_desc", "An in-game cash boost to get you started.", "دفعة نقدية داخل اللعبة لتبدأ بقوة."},
			{"product_custom_plate_name", "Custom License Plate", "لوحة سيارة مخصصة"},
			{"product_custom_plate_desc", "A unique license plate for your favorite vehicle.", "لوحة فريدة لسيارتك المفضلة."},
			{"quiz_police_name", "Police Department Application", "تقديم قسم الشرطة"},
			{"quiz_police_desc", "Read the rules carefully. Any attempt to cheat will result in immediate rejection. Your application will be cancelled if you navigate away from the page while answering.", "اقرأ القوانين جيداً. أي محاولة غش ستؤدي للرفض الفوري. سيتم إلغاء تقديمك إذا قمت بالخروج من الصفحة أثناء الإجابة."},
			{"q_police_1", "What is the first procedure when dealing with a suspect?", "ما هو الإجراء الأول عند التعامل مع شخص مشتبه به؟"},
			{"q_police_2", "When are you permitted to use lethal force?", "متى يسمح لك باستخدام القوة المميتة؟"},
			{"quiz_medic_name", "EMS Department Application", "تقديم قسم الإسعاف"},
			{"quiz_medic_desc", "You are required to be calm and professional at all times. Your application will be cancelled if you navigate away from the page while answering.", "مطلوب منك الهدوء والاحترافية في جميع الأوقات. سيتم إلغاء تقديمك إذا قمت بالخروج من الصفحة أثناء الإجابة."},
			{"q_medic_1", "What is your top priority when arriving at an accident scene?", "ما هي أولويتك القصوى عند الوصول إلى مكان الحادث؟"},
		}
		for _, e := range defaults {
			db.Create(&model.Translation{Key: e.key, Lang: "en", Text: e.en})
			db.Create(&model.Translation{Key: e.key, Lang: "ar", Text: e.ar})
		}
	}
}
