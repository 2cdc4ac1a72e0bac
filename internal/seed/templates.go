// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package seed

import "github.com/tomtom215/shelfmate/internal/models"

// item names a template entry either by catalog id or by a search query.
type item struct {
	Type  models.ContentType
	ID    models.ContentID
	Query string
}

type template struct {
	Title       string
	Description string
	Items       []item
}

func movies(ids ...string) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item{Type: models.ContentMovie, ID: models.ContentID(id)}
	}
	return out
}

func books(queries ...string) []item {
	out := make([]item, len(queries))
	for i, q := range queries {
		out[i] = item{Type: models.ContentBook, Query: q}
	}
	return out
}

func mv(id string) item { return item{Type: models.ContentMovie, ID: models.ContentID(id)} }
func bk(query string) item { return item{Type: models.ContentBook, Query: query} }

// dummyNames are the display names of user0 through user9.
var dummyNames = []string{
	"김민준", "이서연", "박지호", "정하은", "최도현",
	"윤서영", "장우진", "한소현", "임태준", "노아영",
}

// Some ids (1160018, 783416) are not in the movie catalog and are skipped.
var movieTemplates = []template{
	{"액션 블록버스터 모음집", "스릴 넘치는 액션 영화들을 모았습니다", movies("533535", "1160018", "519182", "298618", "447365", "640146")},
	{"마블 시네마틱 유니버스", "MCU 최신작들로 구성된 추천 목록", movies("447365", "640146", "505642", "524434", "566525")},
	{"가족과 함께 보는 애니메이션", "온 가족이 즐길 수 있는 애니메이션 영화", movies("502356", "438148", "76600")},
	{"공포 스릴러 추천작", "긴장감 넘치는 공포 영화 모음", movies("615656", "460465", "399566")},
	{"로맨틱 코미디 베스트", "달달한 로맨스와 유쾌한 코미디", movies("634649", "298618", "502356")},
	{"SF 판타지 대작", "상상력이 돋보이는 SF 판타지 영화", movies("76600", "298618", "447365", "640146")},
	{"범죄 스릴러 걸작", "긴장감 넘치는 범죄 영화들", movies("298618", "609681", "783416")},
	{"여름 휴가철 추천작", "시원한 여름에 어울리는 영화들", movies("615656", "76600", "438148", "447365")},
	{"겨울밤에 보기 좋은 영화", "따뜻한 실내에서 즐기는 겨울 영화", movies("634649", "505642", "609681")},
	{"주말 극장가 인기작", "최근 극장가를 휩쓴 인기 영화들", movies("533535", "502356", "447365", "615656", "298618")},
	{"연인과 함께 보기 좋은 영화", "데이트 무비로 완벽한 로맨틱 영화", movies("634649", "502356", "76600")},
	{"친구들과 보는 코미디", "친구들과 함께 웃으며 볼 수 있는 영화", movies("502356", "438148", "533535")},
	{"혼자 보기 좋은 진중한 영화", "혼자만의 시간에 감상하기 좋은 작품", movies("609681", "505642", "783416")},
	{"스트레스 해소용 액션", "짜릿한 액션으로 스트레스를 날려버리세요", movies("533535", "298618", "1160018", "519182")},
	{"영화관에서 놓친 화제작", "극장에서 못 본 화제의 영화들", movies("615656", "436270", "460465", "399566")},
	{"주말 밤 추천 영화", "주말 저녁 시간대에 어울리는 영화", movies("634649", "447365", "502356")},
	{"새벽에 보는 잔잔한 영화", "조용한 새벽 시간에 감상하기 좋은 작품", movies("76600", "505642", "609681")},
	{"연말연시 특별 추천작", "특별한 연말연시를 위한 영화 모음", movies("502356", "76600", "634649", "447365")},
}

var bookTemplates = []template{
	{"힐링이 필요할 때 읽는 책", "마음을 치유해주는 따뜻한 책들", books("미드나잇 라이브러리", "달러구트 꿈 백화점", "죽고 싶지만 떡볶이는 먹고 싶어", "나는 나로 살기로 했다")},
	{"인문학 교양 필독서", "교양을 쌓을 수 있는 인문학 도서", books("공정하다는 착각", "정의란 무엇인가", "사피엔스", "어떻게 살 것인가")},
	{"과학의 즐거움", "과학을 쉽고 재미있게 배울 수 있는 책", books("하리하라의 생물학 카페", "코스모스 칼 세이건", "사피엔스")},
	{"현대 한국 소설 베스트", "최근 주목받는 한국 문학 작품들", books("아몬드 손원평", "달러구트 꿈 백화점", "불편한 편의점", "죽고 싶지만 떡볶이는 먹고 싶어")},
	{"자기계발 필수 도서", "성장과 발전을 위한 자기계발서", books("트렌드 코리아 2024", "어떻게 살 것인가", "책읽기의 즐거움", "나는 나로 살기로 했다")},
}

var mixedTemplates = []template{
	{"완벽한 주말 엔터테인먼트", "주말을 알차게 보낼 수 있는 영화와 책", []item{mv("502356"), bk("미드나잇 라이브러리"), mv("447365"), bk("달러구트 꿈 백화점"), mv("76600")}},
	{"감성 충전 패키지", "감성을 자극하는 영화와 에세이", []item{bk("죽고 싶지만 떡볶이는 먹고 싶어"), mv("609681"), bk("나는 나로 살기로 했다"), mv("505642"), bk("미드나잇 라이브러리")}},
	{"지적 호기심 충족", "생각할 거리를 주는 영화와 책", []item{bk("정의란 무엇인가"), mv("298618"), bk("사피엔스"), mv("436270"), bk("공정하다는 착각")}},
	{"가족과 함께하는 시간", "온 가족이 즐길 수 있는 콘텐츠", []item{mv("502356"), mv("438148"), bk("달러구트 꿈 백화점"), mv("76600"), bk("하리하라의 생물학 카페")}},
	{"트렌드 키워드로 보는 2024", "올해의 트렌드를 반영한 영화와 책", []item{bk("트렌드 코리아 2024"), mv("533535"), bk("불편한 편의점"), mv("615656"), bk("책읽기의 즐거움")}},
}
