package engine

import "github.com/yeremiapane/smart-pos/models"

// Categories are the catalog groupings offered when editing a product.
var Categories = []string{"เครื่องดื่ม", "เบเกอรี่", "ของว่าง", "สินค้าทั่วไป", "อาหารจานหลัก"}

var seedProducts = []models.Product{
	{
		ID:                "p1",
		Name:              "กาแฟอเมริกาโน่",
		Category:          "เครื่องดื่ม",
		Price:             60,
		Stock:             100,
		ImageURL:          "https://picsum.photos/id/225/300/200",
		Description:       "กาแฟดำรสเข้มข้น สกัดจากเมล็ดกาแฟอาราบิก้าชั้นดี",
		PrepTimeInMinutes: 3,
	},
	{
		ID:                "p2",
		Name:              "คาปูชิโน่",
		Category:          "เครื่องดื่ม",
		Price:             75,
		Stock:             80,
		ImageURL:          "https://picsum.photos/id/369/300/200",
		Description:       "กาแฟนมรสกลมกล่อม พร้อมฟองนมนุ่มละมุน",
		PrepTimeInMinutes: 5,
	},
	{
		ID:                "p3",
		Name:              "ชาเขียวมัทฉะลาเต้",
		Category:          "เครื่องดื่ม",
		Price:             80,
		Stock:             70,
		ImageURL:          "https://picsum.photos/id/404/300/200",
		Description:       "มัทฉะแท้จากญี่ปุ่น ผสมนมสด หอมหวานลงตัว",
		PrepTimeInMinutes: 5,
	},
	{
		ID:                "p4",
		Name:              "ครัวซองต์เนยสด",
		Category:          "เบเกอรี่",
		Price:             55,
		Stock:             50,
		ImageURL:          "https://picsum.photos/id/326/300/200",
		Description:       "ครัวซองต์อบใหม่ กรอบนอกนุ่มใน หอมเนยฝรั่งเศส",
		PrepTimeInMinutes: 2,
	},
	{
		ID:                "p5",
		Name:              "เค้กช็อกโกแลต",
		Category:          "เบเกอรี่",
		Price:             95,
		Stock:             30,
		ImageURL:          "https://picsum.photos/id/1070/300/200",
		Description:       "เค้กช็อกโกแลตเนื้อฉ่ำ เข้มข้นถึงใจ",
		PrepTimeInMinutes: 1,
	},
	{
		ID:                "p6",
		Name:              "แซนวิชแฮมชีส",
		Category:          "ของว่าง",
		Price:             65,
		Stock:             45,
		ImageURL:          "https://picsum.photos/id/201/300/200",
		Description:       "แซนวิชอบร้อน อิ่มอร่อยง่ายๆ ได้ประโยชน์",
		PrepTimeInMinutes: 7,
	},
	{
		ID:                "p7",
		Name:              "น้ำส้มคั้นสด",
		Category:          "เครื่องดื่ม",
		Price:             70,
		Stock:             60,
		ImageURL:          "https://picsum.photos/id/102/300/200",
		Description:       "น้ำส้มคั้นสด 100% ไม่ผสมน้ำตาล ดีต่อสุขภาพ",
		PrepTimeInMinutes: 4,
	},
	{
		ID:                "p8",
		Name:              "บราวนี่",
		Category:          "เบเกอรี่",
		Price:             70,
		Stock:             40,
		ImageURL:          "https://picsum.photos/id/431/300/200",
		Description:       "บราวนี่เนื้อหนึบ เข้มข้นด้วยดาร์กช็อกโกแลต",
		PrepTimeInMinutes: 1,
	},
	{
		ID:                "p9",
		Name:              "แก้ว Tumbler",
		Category:          "สินค้าทั่วไป",
		Price:             350,
		Stock:             25,
		ImageURL:          "https://picsum.photos/id/1073/300/200",
		Description:       "แก้วเก็บความเย็นดีไซน์สวยงาม พกพาสะดวก",
		PrepTimeInMinutes: 0,
	},
	{
		ID:                "p10",
		Name:              "สปาเก็ตตี้คาโบนาร่า",
		Category:          "อาหารจานหลัก",
		Price:             180,
		Stock:             50,
		ImageURL:          "https://picsum.photos/id/1060/300/200",
		Description:       "สปาเก็ตตี้เส้นเหนียวนุ่ม คลุกเคล้าซอสครีมชีสและเบคอนกรอบ",
		PrepTimeInMinutes: 15,
	},
	{
		ID:                "p11",
		Name:              "ข้าวผัดกะเพราหมูกรอบ",
		Category:          "อาหารจานหลัก",
		Price:             90,
		Stock:             60,
		ImageURL:          "https://picsum.photos/id/211/300/200",
		Description:       "รสชาติจัดจ้านถึงเครื่อง หอมกลิ่นใบกะเพราและพริกแห้ง",
		PrepTimeInMinutes: 12,
	},
}

var seedUsers = []models.User{
	{ID: "user1", Name: "สมชาย (Admin)", Username: "admin", Password: "123", Role: models.RoleAdmin},
	{ID: "user2", Name: "สมศรี (Cashier)", Username: "cashier1", Password: "123", Role: models.RoleCashier},
	{ID: "user3", Name: "สมศักดิ์ (Kitchen)", Username: "kitchen1", Password: "123", Role: models.RoleKitchen},
	{ID: "user4", Name: "สมหญิง (Server)", Username: "server1", Password: "123", Role: models.RoleServer},
}

// DefaultSettings is the store configuration applied on every boot.
func DefaultSettings() models.Settings {
	return models.Settings{
		StoreName:      "ร้านกาแฟ Gemini",
		Address:        "123 ถนนสุขุมวิท, กรุงเทพมหานคร 10110",
		TaxRate:        7,
		CommissionRate: 5,
	}
}

// SeedSnapshot is the state of a fresh terminal: demo catalog, one account
// per role, nobody signed in.
func SeedSnapshot() models.Snapshot {
	return models.Snapshot{
		Products: append([]models.Product(nil), seedProducts...),
		Users:    append([]models.User(nil), seedUsers...),
		Cart:     []models.OrderLine{},
		Orders:   []models.Order{},
		Settings: DefaultSettings(),
	}
}
